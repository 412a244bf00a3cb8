// Package library implements the persistence boundary: saving a fully
// built part under a name and reloading it later as an independent
// clone. A saved part is its designer-API call log (see gate.Snapshot/
// circuit.Snapshot), gob-encoded and replayed on Load, which sidesteps
// having to serialize lvlath's internal graph state at all.
package library

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/iperetta/ECS-Simulator/circuit"
	"github.com/iperetta/ECS-Simulator/core"
	"github.com/iperetta/ECS-Simulator/gate"
)

// SchemaVersion is the on-disk snapshot format's own version, bumped
// whenever envelope{} or Op{} shapes change in a way older saves can't
// be read under. Save stamps every .sim file with it; Load rejects a
// major-version mismatch rather than risk silently misreading a
// renamed or reordered field.
var SchemaVersion = semver.MustParse("1.0.0")

type envelope struct {
	Schema string
	Part   circuit.Envelope
}

// Library is a directory of named .sim snapshots.
type Library struct {
	dir string
}

// New returns a Library rooted at dir. dir must already exist; New does
// not create it.
func New(dir string) *Library {
	return &Library{dir: dir}
}

// Dir reports the library's backing directory.
func (l *Library) Dir() string { return l.dir }

// PathFor returns the on-disk path name's snapshot would be read from
// or written to, appending ".sim" if the caller omitted it.
func (l *Library) PathFor(name string) string {
	if !strings.HasSuffix(name, ".sim") {
		name += ".sim"
	}
	return filepath.Join(l.dir, name)
}

// Save snapshots part under name and writes it to the library
// directory as gob-encoded bytes.
func (l *Library) Save(name string, part gate.Evaluable) error {
	env, err := circuit.EnvelopeOf(part)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&envelope{Schema: SchemaVersion.String(), Part: env}); err != nil {
		return core.NewError(core.PersistenceFailure, part.Name(), "Save", err.Error())
	}
	if err := os.WriteFile(l.PathFor(name), buf.Bytes(), 0o644); err != nil {
		return core.NewError(core.PersistenceFailure, part.Name(), "Save", err.Error())
	}
	return nil
}

// Load reads name's snapshot and rebuilds it as a fresh, independently
// cloned Evaluable: two Loads of the same name never alias a single
// node graph between their results.
func (l *Library) Load(name string) (gate.Evaluable, error) {
	raw, err := os.ReadFile(l.PathFor(name))
	if err != nil {
		return nil, core.NewError(core.PersistenceFailure, name, "Load", err.Error())
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		return nil, core.NewError(core.PersistenceFailure, name, "Load", err.Error())
	}
	loaded, err := semver.Parse(env.Schema)
	if err != nil {
		return nil, core.NewError(core.PersistenceFailure, name, "Load", "unparsable schema version "+env.Schema)
	}
	if loaded.Major != SchemaVersion.Major {
		return nil, core.NewError(core.PersistenceFailure, name, "Load",
			"incompatible schema major version "+env.Schema+" (library is "+SchemaVersion.String()+")")
	}
	return env.Part.Rebuild()
}

// Exists reports whether name already has a saved snapshot.
func (l *Library) Exists(name string) bool {
	_, err := os.Stat(l.PathFor(name))
	return err == nil
}
