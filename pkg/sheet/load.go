package sheet

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/callsheet/pkg/errors"
)

// Encoding names a document serialization.
type Encoding string

// Supported encodings.
const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
	EncodingTOML Encoding = "toml"
)

var encodingByExt = map[string]Encoding{
	".json": EncodingJSON,
	".yaml": EncodingYAML,
	".yml":  EncodingYAML,
	".toml": EncodingTOML,
}

// EncodingFromPath returns the encoding implied by a file extension.
func EncodingFromPath(path string) (Encoding, bool) {
	enc, ok := encodingByExt[strings.ToLower(filepath.Ext(path))]
	return enc, ok
}

// Load reads the document at path, choosing the decoder from its extension.
//
// A missing file yields an ErrCodeFileNotFound error; anything that cannot
// be decoded yields ErrCodeInvalidDocument. Load does not validate or
// normalize the result.
func Load(path string) (*Document, error) {
	if err := errors.ValidateDocumentFilename(path); err != nil {
		return nil, err
	}
	enc, _ := EncodingFromPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	doc, err := Parse(data, enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", path)
	}
	return doc, nil
}

// Read decodes a document from r.
func Read(r io.Reader, enc Encoding) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, enc)
}

// Parse decodes a document from data.
func Parse(data []byte, enc Encoding) (*Document, error) {
	var doc Document
	switch enc {
	case EncodingJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case EncodingYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case EncodingTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported document encoding %q", enc)
	}
	return &doc, nil
}

// Encode writes doc to w in the given encoding.
func Encode(w io.Writer, doc *Document, enc Encoding) error {
	switch enc {
	case EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(doc)
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(doc); err != nil {
			return err
		}
		return e.Close()
	case EncodingTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported document encoding %q", enc)
	}
}
