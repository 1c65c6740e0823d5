package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// MQTTCoupling answers queries arriving on an MQTT topic.
//
// Incoming payloads are either a bare query string or a JSON object
// {"q":"...","to":"..."}, where "to" overrides the reply topic.
type MQTTCoupling struct {
	S *Service

	Client     mqtt.Client
	SubTopic   string
	ReplyTopic string
	Quiesce    uint
}

// NewMQTTCoupling makes an MQTTCoupling from the given args.
//
// With nil args, just returns the FlagSet (for usage messages).
func NewMQTTCoupling(s *Service, args []string) (Coupling, *flag.FlagSet) {
	var (
		// Follow mosquitto_sub command line args.

		fs = flag.NewFlagSet("mq", flag.ExitOnError)

		broker     = fs.String("h", "tcp://localhost", "broker hostname")
		port       = fs.Int("p", 1883, "broker port")
		clientId   = fs.String("i", "factbot", "client id")
		keepAlive  = fs.Int("k", 10, "keep-alive in seconds")
		clean      = fs.Bool("c", true, "clean session")
		subTopic   = fs.String("t", "factbot/queries", "subscription topic")
		replyTopic = fs.String("reply-topic", "factbot/answers", "default reply topic")
		quiesce    = fs.Int("quiesce", 100, "disconnection quiescence (in milliseconds)")
	)

	if args == nil {
		return nil, fs
	}

	fs.Parse(args)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s:%d", *broker, *port))
	opts.SetClientID(*clientId)
	opts.SetKeepAlive(time.Second * time.Duration(*keepAlive))
	opts.CleanSession = *clean

	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		s.Logger.Warn("mqtt connection lost", zap.Error(err))
	}

	c := &MQTTCoupling{
		S:          s,
		SubTopic:   *subTopic,
		ReplyTopic: *replyTopic,
		Quiesce:    uint(*quiesce),
	}

	c.Client = mqtt.NewClient(opts)

	return c, fs
}

// handle is a Paho publish handler for messages the broker sends us
// due to our subscription.
func (c *MQTTCoupling) handle(ctx context.Context, msg mqtt.Message) {
	var (
		payload = msg.Payload()
		q       = string(payload)
		to      = c.ReplyTopic
	)

	var posted struct {
		Q  string `json:"q"`
		To string `json:"to"`
	}
	if err := json.Unmarshal(payload, &posted); err == nil && posted.Q != "" {
		q = posted.Q
		if posted.To != "" {
			to = posted.To
		}
	}

	c.S.Logger.Info("mqtt query", zap.String("topic", msg.Topic()), zap.String("q", q))

	resp := c.S.Answer(ctx, q)

	js, err := json.Marshal(resp)
	if err != nil {
		c.S.Logger.Error("mqtt marshal", zap.Error(err))
		return
	}

	token := c.Client.Publish(to, 0, false, js)
	token.Wait()
	if err := token.Error(); err != nil {
		c.S.Logger.Error("mqtt publish", zap.Error(err))
	}
}

// Serve connects, subscribes, and then blocks until the context is
// canceled.
func (c *MQTTCoupling) Serve(ctx context.Context) error {
	if token := c.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	c.S.Logger.Info("mqtt connected")

	handler := func(client mqtt.Client, msg mqtt.Message) {
		c.handle(ctx, msg)
	}
	if t := c.Client.Subscribe(c.SubTopic, 0, handler); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	c.S.Logger.Info("mqtt subscribed", zap.String("topic", c.SubTopic))

	<-ctx.Done()

	c.Client.Disconnect(c.Quiesce)

	return nil
}
