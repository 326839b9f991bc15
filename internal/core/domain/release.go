package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"go.trai.ch/zerr"
)

// Release is a published build on a channel.
type Release struct {
	Version      string `json:"version" yaml:"version" validate:"required"`
	Released     string `json:"released" yaml:"released" validate:"omitempty,datetime=2006-01-02"`
	FrameworkSHA string `json:"framework_sha" yaml:"framework_sha" validate:"required,hexadecimal,min=7,max=40"`
}

// Channel is a named release stream, ordered oldest to newest.
type Channel struct {
	Name     string    `validate:"required"`
	Releases []Release `validate:"dive"`
}

// Latest returns the newest release of the channel.
func (c Channel) Latest() (Release, bool) {
	if len(c.Releases) == 0 {
		return Release{}, false
	}
	return c.Releases[len(c.Releases)-1], true
}

// Channels preserves the document order of the channels object in a snapshot.
type Channels []Channel

// UnmarshalJSON decodes a JSON object of channel name to release list, keeping key order.
func (cs *Channels) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*cs = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.Wrap(ErrSnapshotParseFailed, "channels must be an object")
	}

	out := make(Channels, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var releases []Release
		if err := dec.Decode(&releases); err != nil {
			return err
		}
		out = append(out, Channel{Name: name, Releases: releases})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*cs = out
	return nil
}

// MarshalJSON encodes the channels as a JSON object in slice order.
func (cs Channels) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		releases := c.Releases
		if releases == nil {
			releases = []Release{}
		}
		val, err := json.Marshal(releases)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Snapshot is the immutable release history the engine searches.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source,omitempty"`
	Channels    Channels  `json:"channels" validate:"dive"`
}

// Empty reports whether the snapshot carries no channels at all.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Channels) == 0
}

// Channel looks up a channel by name.
func (s *Snapshot) Channel(name string) (Channel, bool) {
	if s == nil {
		return Channel{}, false
	}
	for _, c := range s.Channels {
		if c.Name == name {
			return c, true
		}
	}
	return Channel{}, false
}
