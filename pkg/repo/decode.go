/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package repo loads package indexes and run list manifests from disk.

Both file kinds are accepted in YAML and TOML; the format is chosen by the
file extension.
*/
package repo

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// ErrUnknownFormat indicates a file extension that is neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown file format")

func isTOML(path string) (bool, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return true, nil
	case ".yaml", ".yml":
		return false, nil
	default:
		return false, errors.Wrapf(ErrUnknownFormat, "%q (use .yaml, .yml or .toml)", ext)
	}
}

// decode unmarshals data into v strictly: unknown keys are errors.
//
// Both formats are converted to JSON and decoded through the json tags of v.
func decode(data []byte, path string, v interface{}) error {
	t, err := isTOML(path)
	if err != nil {
		return err
	}
	if !t {
		return yaml.UnmarshalStrict(data, v)
	}

	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func readFile(path string, v interface{}) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decode(b, path, v); err != nil {
		return errors.Wrapf(err, "error loading %s", path)
	}
	return nil
}
