// README: Snapshot documents served from the fixture directory for client development.
package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Kind names one snapshot document.
type Kind string

const (
	KindItinerary Kind = "itinerary"
	KindFeedback  Kind = "feedback"
	KindBooking   Kind = "booking"
)

var ErrUnknownKind = errors.New("unknown fixture kind")

var files = map[Kind]string{
	KindItinerary: "itinerary.json",
	KindFeedback:  "feedback.json",
	KindBooking:   "booking-response.json",
}

type Service struct {
	dir string
}

func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// Path is where the document for k lives.
func (s *Service) Path(k Kind) (string, error) {
	name, ok := files[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return filepath.Join(s.dir, name), nil
}

// Load reads and parses the document for k and re-encodes it with sorted object keys, so
// repeated reads of an unchanged file are byte-identical. Numbers keep their source text.
func (s *Service) Load(k Kind) (json.RawMessage, error) {
	path, err := s.Path(k)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return out, nil
}

func decode(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return doc, nil
}
