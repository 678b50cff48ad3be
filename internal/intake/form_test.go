package intake

import (
	"context"
	"testing"
)

// The form accessors must be callable on the copy Session.Form returns,
// not only on an addressable variable.
func TestFormAccessorsOnReturnedCopy(t *testing.T) {
	ctx := context.Background()
	c := NewController(NewMemoryStore(), nil, nil)
	s, err := c.Load(ctx, "sess-form", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.UpdateForm(ctx, func(f *FormState) {
		f.ServiceIDs = []string{"oath"}
		f.Documents = []DocumentRef{{ServiceID: "oath", FileName: "deed.pdf"}}
	})

	if !s.Form().HasServiceSelected("oath") {
		t.Fatal("HasServiceSelected on returned copy")
	}
	if s.Form().HasServiceSelected("apostille") {
		t.Fatal("unselected service reported selected")
	}
	if docs := s.Form().DocumentsForService("oath"); len(docs) != 1 || docs[0].FileName != "deed.pdf" {
		t.Fatalf("DocumentsForService on returned copy = %+v", docs)
	}
}
