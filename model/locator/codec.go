package locator

import (
	"encoding/json"

	"github.com/viant/versionary/model/uid"
	"gopkg.in/yaml.v3"
)

type document struct {
	ID      string `json:"id" yaml:"id"`
	Version int    `json:"version" yaml:"version"`
}

func (l Locator) document() document {
	ret := document{Version: l.Version}
	if l.ID != nil {
		ret.ID = l.ID.Code()
	}
	return ret
}

func (d document) locator() (Locator, error) {
	id, err := uid.Parse(d.ID)
	if err != nil {
		return Locator{}, err
	}
	return New(id, d.Version)
}

func (l Locator) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.document())
}

func (l *Locator) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := doc.locator()
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}

func (l Locator) MarshalYAML() (interface{}, error) {
	return l.document(), nil
}

func (l *Locator) UnmarshalYAML(node *yaml.Node) error {
	var doc document
	if err := node.Decode(&doc); err != nil {
		return err
	}
	decoded, err := doc.locator()
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}
