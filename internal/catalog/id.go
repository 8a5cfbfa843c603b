// Package catalog defines the canonical movie record and the adapter that
// normalizes third-party catalog services into it.
package catalog

import (
	"fmt"
	"strings"
)

// Source identifies which upstream catalog a record came from.
type Source string

const (
	SourceTMDB Source = "tmdb"
	SourceIMDB Source = "imdb"
)

// ID is a catalog-qualified movie identifier. Records from different
// catalogs never collide because the source tag participates in equality.
type ID struct {
	Source Source
	Native string
}

// TMDBID builds an ID from a native TMDB numeric id.
func TMDBID(native int64) ID {
	return ID{Source: SourceTMDB, Native: fmt.Sprintf("%d", native)}
}

// IMDBID builds an ID from a native IMDB id ("tt0133093").
func IMDBID(native string) ID {
	return ID{Source: SourceIMDB, Native: native}
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id.Native == ""
}

// String renders the wire/storage form: "tmdb-603" for TMDB, the bare
// "tt"-id for IMDB (its native form is already namespaced).
func (id ID) String() string {
	if id.Source == SourceIMDB {
		return id.Native
	}
	return string(id.Source) + "-" + id.Native
}

// Normalized returns the native id with the source tag dropped. Used only
// for cross-catalog dedup comparison, never as a lookup key.
func (id ID) Normalized() string {
	return id.Native
}

// ParseID accepts both the prefixed form ("tmdb-603") and legacy bare
// forms: "tt"-ids map to SourceIMDB, bare numbers to SourceTMDB.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("empty movie id")
	}
	if prefix, native, ok := strings.Cut(s, "-"); ok && prefix == string(SourceTMDB) && native != "" {
		return ID{Source: SourceTMDB, Native: native}, nil
	}
	if strings.HasPrefix(s, "tt") {
		return ID{Source: SourceIMDB, Native: s}, nil
	}
	if isDigits(s) {
		return ID{Source: SourceTMDB, Native: s}, nil
	}
	return ID{}, fmt.Errorf("unrecognized movie id %q", s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as their
// string form in JSON payloads.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
