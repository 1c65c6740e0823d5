package wiki

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

var pagesBucket = []byte("pages")

// cacheEntry is the stored envelope for one page.
type cacheEntry struct {
	Fetched time.Time `json:"fetched"`
	HTML    string    `json:"html"`
}

// Cache is a bolt-backed store for fetched page HTML.
type Cache struct {
	filename string
	db       *bolt.DB
}

// NewCache makes a Cache that will live in the given file.
func NewCache(filename string) (*Cache, error) {
	return &Cache{
		filename: filename,
	}, nil
}

// Open opens the database and makes the pages bucket.
func (c *Cache) Open() error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(c.filename, 0644, opts)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(pagesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}
	c.db = db
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached HTML for a title, reporting whether it was
// there at all.
func (c *Cache) Get(title string) (string, bool, error) {
	var entry cacheEntry
	var have bool
	err := c.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(pagesBucket).Get([]byte(title))
		if bs == nil {
			return nil
		}
		if err := json.Unmarshal(bs, &entry); err != nil {
			return err
		}
		have = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return entry.HTML, have, nil
}

// Put stores the HTML for a title.
func (c *Cache) Put(title, page string) error {
	entry := cacheEntry{
		Fetched: time.Now().UTC(),
		HTML:    page,
	}
	bs, err := json.Marshal(&entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(pagesBucket).Put([]byte(title), bs)
	})
}

// Sweep removes entries fetched longer than maxAge ago, returning
// how many it removed.
func (c *Cache) Sweep(maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(pagesBucket)
		cur := b.Cursor()
		var stale [][]byte
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var entry cacheEntry
			if err := json.Unmarshal(v, &entry); err != nil || entry.Fetched.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}
