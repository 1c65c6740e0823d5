// Package main is a little command-line utility to invoke token
// pattern matching.
//
//	tokmatch -p 'when was % born' -i 'when was ada lovelace born' -w '["ada lovelace"]'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/tokenwise/factbot/match"
)

func main() {
	var (
		patternStr = flag.String("p", "", "whitespace-delimited pattern")
		inputStr   = flag.String("i", "", "whitespace-delimited input")
		wantJS     = flag.String("w", "", "wanted captures in JSON (an array of strings)")

		single = flag.String("single", match.Single, "single-token wildcard marker")
		multi  = flag.String("multi", match.Multi, "multi-token wildcard marker")

		bench = flag.Int("bench", 0, "number of times to run (and report time)")

		want   []string
		wanted bool
	)

	flag.Parse()

	m := &match.Matcher{
		Single: *single,
		Multi:  *multi,
	}

	pattern := match.ParsePattern(*patternStr)
	input := strings.Fields(*inputStr)

	if *wantJS != "" {
		if err := json.Unmarshal([]byte(*wantJS), &want); err != nil {
			panic(err)
		}
		wanted = true
	}

	if 0 < *bench {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		allocs := stats.TotalAlloc
		then := time.Now()
		for i := 0; i < *bench; i++ {
			m.Match(pattern, input)
		}
		elapsed := time.Now().Sub(then)
		meanNanos := elapsed.Nanoseconds() / int64(*bench)

		runtime.ReadMemStats(&stats)
		allocated := (stats.TotalAlloc - allocs) / uint64(*bench)

		log.Printf("%d iterations, %d mean ns/Match, %d mean bytes allocated per Match", *bench, meanNanos, allocated)
	}

	captures, ok := m.Match(pattern, input)

	if wanted {
		fmt.Printf("%v\n", ok && reflect.DeepEqual(captures, want))
		return
	}

	if !ok {
		fmt.Printf("no match\n")
		return
	}

	js, err := json.Marshal(&captures)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s\n", js)
}
