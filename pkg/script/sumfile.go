package script

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const hashPrefix = "h1:"

type (
	// SumFile records the scripts held in an archive directory. Each entry's
	// hash chains the previous entry's hash, and the total is the hash of all
	// entry hashes, so reordering, removing or editing any archived script
	// changes the total.
	SumFile struct {
		Total   string
		entries []sumEntry
	}

	sumEntry struct {
		name string
		hash []byte
	}
)

// NewSumFile creates an empty SumFile.
func NewSumFile() *SumFile {
	return &SumFile{}
}

// ReadSumFile parses the format written by WriteTo:
//
//	h1:<total>
//	<name> h1:<hash>
//	...
func ReadSumFile(r io.Reader) (*SumFile, error) {
	sum := NewSumFile()
	scanner := bufio.NewScanner(r)

	for line := 0; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if sum.Total == "" && len(sum.entries) == 0 {
			if !strings.HasPrefix(text, hashPrefix) {
				return nil, errors.Errorf("line %d: invalid total hash %q", line+1, text)
			}

			sum.Total = text
			continue
		}

		name, encoded, ok := strings.Cut(text, " ")
		if !ok || !strings.HasPrefix(encoded, hashPrefix) {
			return nil, errors.Errorf("line %d: invalid entry %q", line+1, text)
		}

		hash, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, hashPrefix))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid hash for %s", line+1, name)
		}

		sum.entries = append(sum.entries, sumEntry{name: name, hash: hash})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read sum file")
	}

	return sum, nil
}

// Add appends a file to the sum.
func (s *SumFile) Add(name string, content []byte) {
	h := sha256.New()
	h.Write(content)
	if n := len(s.entries); n > 0 {
		h.Write(s.entries[n-1].hash)
	}

	s.entries = append(s.entries, sumEntry{name: name, hash: h.Sum(nil)})
	s.Total = s.total()
}

// Names returns the recorded file names in order.
func (s *SumFile) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}

	return names
}

// Equal reports whether both sums describe the same files and content.
func (s *SumFile) Equal(other *SumFile) bool {
	if len(s.entries) != len(other.entries) || s.Total != other.Total {
		return false
	}

	for i, e := range s.entries {
		if e.name != other.entries[i].name || !bytes.Equal(e.hash, other.entries[i].hash) {
			return false
		}
	}

	return true
}

// WriteTo implements io.WriterTo.
func (s *SumFile) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := fmt.Fprintln(w, s.Total)
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range s.entries {
		n, err := fmt.Fprintf(w, "%s %s%s\n", e.name, hashPrefix, base64.StdEncoding.EncodeToString(e.hash))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func (s *SumFile) total() string {
	h := sha256.New()
	for _, e := range s.entries {
		h.Write(e.hash)
	}

	return hashPrefix + base64.StdEncoding.EncodeToString(h.Sum(nil))
}
