// Package store keeps named drawings in a bbolt database so they can be
// rendered again without re-running their program.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/massmola/compiler/eval"
)

var ErrNotFound = errors.New("drawing not found")

var bucketName = []byte("drawings")

// Drawing is a program together with the commands it drew.
type Drawing struct {
	Name     string
	Source   string
	Commands []eval.Command
	Created  time.Time
}

type Store struct {
	db *bolt.DB
}

// Open opens, creating it if needed, the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put saves d under d.Name, replacing any drawing of that name.
func (s *Store) Put(d *Drawing) error {
	if d.Name == "" {
		return fmt.Errorf("store: drawing has no name")
	}
	data, err := json.Marshal(toDisk(d))
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", d.Name, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(d.Name), data)
	})
}

func (s *Store) Get(name string) (*Drawing, error) {
	var d *Drawing
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		var err error
		d, err = decode(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List returns the names of all saved drawings in sorted order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return b.Delete([]byte(name))
	})
}

type drawingDisk struct {
	Name     string       `json:"name"`
	Source   string       `json:"source"`
	Created  time.Time    `json:"created"`
	Commands []commandRec `json:"commands"`
}

// commandRec holds the four coordinates of a command in argument order.
type commandRec struct {
	Kind  string     `json:"kind"`
	Args  [4]float64 `json:"args"`
	Color string     `json:"color"`
}

func toDisk(d *Drawing) drawingDisk {
	recs := make([]commandRec, 0, len(d.Commands))
	for _, cmd := range d.Commands {
		switch cmd := cmd.(type) {
		case eval.RectCmd:
			recs = append(recs, commandRec{
				Kind:  cmd.Kind(),
				Args:  [4]float64{float64(cmd.X), float64(cmd.Y), float64(cmd.W), float64(cmd.H)},
				Color: string(cmd.Fill),
			})
		case eval.LineCmd:
			recs = append(recs, commandRec{
				Kind:  cmd.Kind(),
				Args:  [4]float64{float64(cmd.X1), float64(cmd.Y1), float64(cmd.X2), float64(cmd.Y2)},
				Color: string(cmd.Stroke),
			})
		}
	}
	return drawingDisk{
		Name:     d.Name,
		Source:   d.Source,
		Created:  d.Created.UTC(),
		Commands: recs,
	}
}

func decode(data []byte) (*Drawing, error) {
	var raw drawingDisk
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("store: decode: %w", err)
	}
	d := &Drawing{
		Name:     raw.Name,
		Source:   raw.Source,
		Created:  raw.Created,
		Commands: make([]eval.Command, 0, len(raw.Commands)),
	}
	for _, rec := range raw.Commands {
		a := rec.Args
		switch rec.Kind {
		case "rect":
			d.Commands = append(d.Commands, eval.RectCmd{
				X:    eval.Number(a[0]),
				Y:    eval.Number(a[1]),
				W:    eval.Number(a[2]),
				H:    eval.Number(a[3]),
				Fill: eval.Color(rec.Color),
			})
		case "line":
			d.Commands = append(d.Commands, eval.LineCmd{
				X1:     eval.Number(a[0]),
				Y1:     eval.Number(a[1]),
				X2:     eval.Number(a[2]),
				Y2:     eval.Number(a[3]),
				Stroke: eval.Color(rec.Color),
			})
		default:
			return nil, fmt.Errorf("store: %s: unknown command kind %q", raw.Name, rec.Kind)
		}
	}
	return d, nil
}
