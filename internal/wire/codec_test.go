package wire

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func TestEncodeAddOrUpdateRequest(t *testing.T) {
	payload, err := EncodeAddOrUpdateRequest(UpsertNote{
		Front:   "What is Go?",
		Back:    "A language",
		Tags:    "lang",
		ModelID: 42,
		DeckID:  7,
		NoteID:  99,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	msg := dynamicpb.NewMessage(addOrUpdateDesc)
	if err := proto.Unmarshal(payload, msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	fields := msg.Get(fieldByName(msg, "fields")).List()
	if fields.Len() != 2 || fields.Get(0).String() != "What is Go?" || fields.Get(1).String() != "A language" {
		t.Fatalf("unexpected fields, len=%d", fields.Len())
	}
	if got := getScalar(msg, "tags").String(); got != "lang" {
		t.Fatalf("tags = %q", got)
	}

	model := msg.Get(fieldByName(msg, "model")).Message()
	if got := model.Get(model.Descriptor().Fields().ByName("id")).Int(); got != 42 {
		t.Fatalf("model id = %d", got)
	}
	if got := model.Get(model.Descriptor().Fields().ByName("deck_id")).Int(); got != 7 {
		t.Fatalf("model deck id = %d", got)
	}

	note := msg.Get(fieldByName(msg, "note")).Message()
	if got := note.Get(note.Descriptor().Fields().ByName("id")).Int(); got != 99 {
		t.Fatalf("note id = %d", got)
	}
}

func TestEncodeAddOrUpdateOmitsAbsentParts(t *testing.T) {
	payload, err := EncodeAddOrUpdateRequest(UpsertNote{Front: "f", Back: "b"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	msg := dynamicpb.NewMessage(addOrUpdateDesc)
	if err := proto.Unmarshal(payload, msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Has(fieldByName(msg, "model")) {
		t.Fatal("model should be absent for a plain add")
	}
	if msg.Has(fieldByName(msg, "note")) {
		t.Fatal("note should be absent for a plain add")
	}
}

func TestDecodeDeckListInfoResponse(t *testing.T) {
	child := dynamicpb.NewMessage(deckNodeDesc)
	child.Set(child.Descriptor().Fields().ByName("deck_id"), protoreflect.ValueOfInt64(11))
	child.Set(child.Descriptor().Fields().ByName("name"), protoreflect.ValueOfString("Spanish"))
	child.Set(child.Descriptor().Fields().ByName("level"), protoreflect.ValueOfUint32(1))
	child.Set(child.Descriptor().Fields().ByName("new_count"), protoreflect.ValueOfUint32(5))

	root := dynamicpb.NewMessage(deckNodeDesc)
	root.Mutable(root.Descriptor().Fields().ByName("children")).List().Append(protoreflect.ValueOfMessage(child))

	resp := dynamicpb.NewMessage(deckListInfoRespDesc)
	resp.Set(fieldByName(resp, "top_node"), protoreflect.ValueOfMessage(root))
	resp.Set(fieldByName(resp, "current_deck_id"), protoreflect.ValueOfInt64(11))
	resp.Set(fieldByName(resp, "collection_size_bytes"), protoreflect.ValueOfUint64(2048))

	payload, err := proto.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	info, err := DecodeDeckListInfoResponse(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.TopNode == nil {
		t.Fatal("top node missing")
	}
	if len(info.TopNode.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(info.TopNode.Children))
	}
	got := info.TopNode.Children[0]
	if got.DeckID != 11 || got.Name != "Spanish" || got.Level != 1 || got.NewCount != 5 {
		t.Fatalf("unexpected child node: %+v", got)
	}
	if info.CurrentDeckID != 11 || info.CollectionSizeBytes != 2048 {
		t.Fatalf("unexpected counters: %+v", info)
	}
}

func TestDecodeDeckListInfoEmptyPayload(t *testing.T) {
	info, err := DecodeDeckListInfoResponse(nil)
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if info.TopNode != nil {
		t.Fatal("empty payload should have no top node")
	}
}

func TestSearchRoundTrip(t *testing.T) {
	row := dynamicpb.NewMessage(searchResultDesc)
	row.Set(row.Descriptor().Fields().ByName("note_id"), protoreflect.ValueOfInt64(314))
	row.Set(row.Descriptor().Fields().ByName("text"), protoreflect.ValueOfString("front / back"))

	resp := dynamicpb.NewMessage(searchRespDesc)
	resp.Mutable(fieldByName(resp, "results")).List().Append(protoreflect.ValueOfMessage(row))

	payload, err := proto.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	results, err := DecodeSearchResponse(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].NoteID != 314 || results[0].Text != "front / back" {
		t.Fatalf("unexpected result: %+v", results[0])
	}

	req, err := EncodeSearchRequest(`deck:"Spanish"`)
	if err != nil {
		t.Fatalf("encode search: %v", err)
	}
	reqMsg := dynamicpb.NewMessage(searchReqDesc)
	if err := proto.Unmarshal(req, reqMsg); err != nil {
		t.Fatalf("unmarshal search request: %v", err)
	}
	if got := getScalar(reqMsg, "query").String(); got != `deck:"Spanish"` {
		t.Fatalf("query = %q", got)
	}
}

func TestDeckManagementRequests(t *testing.T) {
	payload, err := EncodeRenameDeckRequest(5, "Renamed")
	if err != nil {
		t.Fatalf("encode rename: %v", err)
	}
	msg := dynamicpb.NewMessage(renameDeckDesc)
	if err := proto.Unmarshal(payload, msg); err != nil {
		t.Fatalf("unmarshal rename: %v", err)
	}
	if getScalar(msg, "deck_id").Int() != 5 || getScalar(msg, "name").String() != "Renamed" {
		t.Fatal("rename payload mismatch")
	}

	payload, err = EncodeCreateDeckRequest("Fresh")
	if err != nil {
		t.Fatalf("encode create: %v", err)
	}
	createMsg := dynamicpb.NewMessage(createDeckDesc)
	if err := proto.Unmarshal(payload, createMsg); err != nil {
		t.Fatalf("unmarshal create: %v", err)
	}
	if getScalar(createMsg, "name").String() != "Fresh" {
		t.Fatal("create payload mismatch")
	}
}
