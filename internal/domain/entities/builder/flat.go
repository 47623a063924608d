package builder

import (
	"encoding/json"
)

// FlatData is the node payload carried by a flat item; its content never holds children.
type FlatData struct {
	Type    ComponentType `json:"type"`
	Content Content       `json:"content"`
	Styles  Styles        `json:"styles"`
}

type flatDataJSON struct {
	Type    ComponentType   `json:"type"`
	Content json.RawMessage `json:"content"`
	Styles  Styles          `json:"styles"`
}

// MarshalJSON encodes the content according to the payload type.
func (d FlatData) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Content.WithoutChildren().encode(KindOf(d.Type)))
	if err != nil {
		return nil, err
	}
	styles := d.Styles
	if styles == nil {
		styles = Styles{}
	}
	return json.Marshal(flatDataJSON{Type: d.Type, Content: raw, Styles: styles})
}

// UnmarshalJSON decodes the content according to the payload type.
func (d *FlatData) UnmarshalJSON(data []byte) error {
	var aux flatDataJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Type = aux.Type
	d.Styles = aux.Styles
	if d.Styles == nil {
		d.Styles = Styles{}
	}
	d.Content = decodeContent(KindOf(aux.Type), aux.Content).WithoutChildren()
	return nil
}

// FlatItem is one row of the sortable tree editor.
type FlatItem struct {
	ID       string           `json:"id"`
	Type     ComponentType    `json:"type"`
	ParentID *string          `json:"parentId"`
	Depth    int              `json:"depth"`
	Order    int              `json:"order"`
	Data     FlatData         `json:"data"`
	Children []*ComponentNode `json:"children"`
}

// Parent returns the parent id, empty for root items.
func (f FlatItem) Parent() string {
	if f.ParentID == nil {
		return ""
	}
	return *f.ParentID
}
