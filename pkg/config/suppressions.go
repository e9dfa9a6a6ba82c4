package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/warnings"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadSuppressions builds the suppression table from the inline [suppress]
// table and the optional suppressions file. Problems with individual entries,
// and a missing file, come back as warnings; an unreadable or unparsable file
// is an error.
func LoadSuppressions(fs afero.Fs, file string, inline map[string]interface{}) (warnings.Suppressions, []warnings.Warning, error) {
	suppressions, problems := warnings.ParseSuppressions(inline)
	if file == "" {
		return suppressions, problems, nil
	}

	data, err := afero.ReadFile(fs, file)
	if err != nil {
		if os.IsNotExist(err) {
			problems = append(problems, warnings.Warning{
				Kind:       warnings.MissingSource,
				Identifier: file,
				Detail:     "suppressions file",
			})
			return suppressions, problems, nil
		}
		return warnings.Suppressions{}, nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read suppressions file %s", file)
	}

	raw, err := ParseSuppressionsFile(file, data)
	if err != nil {
		return warnings.Suppressions{}, nil, err
	}
	fromFile, fileProblems := warnings.ParseSuppressions(raw)
	return suppressions.Merge(fromFile), append(problems, fileProblems...), nil
}

// ParseSuppressionsFile decodes a {kind: [identifier, ...]} document. The
// format follows the file extension: .yaml/.yml, .toml or .json.
func ParseSuppressionsFile(name string, data []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	var err error

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = gotoml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported suppressions file format %q", ext).
			WithDetail("path", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse suppressions file %s", name)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}
