package wire

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// The sync service speaks binary protobuf over HTTP. The schema is small and
// stable, so the message descriptors are built at startup instead of being
// generated from a .proto file.

var (
	deckNodeDesc         protoreflect.MessageDescriptor
	searchResultDesc     protoreflect.MessageDescriptor
	deckListInfoReqDesc  protoreflect.MessageDescriptor
	deckListInfoRespDesc protoreflect.MessageDescriptor
	addOrUpdateDesc      protoreflect.MessageDescriptor
	searchReqDesc        protoreflect.MessageDescriptor
	searchRespDesc       protoreflect.MessageDescriptor
	removeDeckDesc       protoreflect.MessageDescriptor
	renameDeckDesc       protoreflect.MessageDescriptor
	createDeckDesc       protoreflect.MessageDescriptor
)

func init() {
	file, err := protodesc.NewFile(schemaFile(), nil)
	if err != nil {
		panic(fmt.Sprintf("wire: build schema: %v", err))
	}

	lookup := func(name protoreflect.Name) protoreflect.MessageDescriptor {
		md := file.Messages().ByName(name)
		if md == nil {
			panic(fmt.Sprintf("wire: message %s missing from schema", name))
		}
		return md
	}

	// Nested message types are reached through their parent fields at
	// encode/decode time; these lookups just assert the schema is complete
	// before any call uses it.
	lookup("NoteId")
	lookup("ModelSelection")

	// Kept for test fixtures that assemble responses node by node.
	deckNodeDesc = lookup("DeckNode")
	searchResultDesc = lookup("SearchResult")

	deckListInfoReqDesc = lookup("DeckListInfoRequest")
	deckListInfoRespDesc = lookup("DeckListInfoResponse")
	addOrUpdateDesc = lookup("AddOrUpdateRequest")
	searchReqDesc = lookup("SearchRequest")
	searchRespDesc = lookup("SearchResponse")
	removeDeckDesc = lookup("RemoveDeckRequest")
	renameDeckDesc = lookup("RenameDeckRequest")
	createDeckDesc = lookup("CreateDeckRequest")
}

func schemaFile() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("rememberit_decks.proto"),
		Package: proto.String("rememberit"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("DeckNode"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("deck_id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					repeatedMessageField("children", 3, ".rememberit.DeckNode"),
					scalarField("level", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("collapsed", 5, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					scalarField("review_count", 6, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("learn_count", 7, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("new_count", 8, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("intraday_learning", 9, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("interday_learning_uncapped", 10, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("new_uncapped", 11, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("review_uncapped", 12, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("total_in_deck", 13, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("total_including_children", 14, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("filtered", 16, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
				},
			},
			{
				Name: proto.String("DeckListInfoRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("minutes_west_of_utc", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
			{
				Name: proto.String("DeckListInfoResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					messageField("top_node", 1, ".rememberit.DeckNode"),
					scalarField("current_deck_id", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("collection_size_bytes", 3, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
					scalarField("media_size_bytes", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				},
			},
			{
				Name: proto.String("NoteId"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				},
			},
			{
				Name: proto.String("ModelSelection"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("deck_id", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				},
			},
			{
				Name: proto.String("AddOrUpdateRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					repeatedScalarField("fields", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("tags", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					messageField("model", 3, ".rememberit.ModelSelection"),
					messageField("note", 4, ".rememberit.NoteId"),
				},
			},
			{
				Name: proto.String("SearchRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("query", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("SearchResult"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("note_id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("text", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("SearchResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					repeatedMessageField("results", 1, ".rememberit.SearchResult"),
				},
			},
			{
				Name: proto.String("RemoveDeckRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("deck_id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				},
			},
			{
				Name: proto.String("RenameDeckRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("deck_id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("CreateDeckRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
		},
	}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func repeatedScalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, typ)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func messageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

func repeatedMessageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := messageField(name, number, typeName)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}
