// Package wirebind maps keyed JSON messages onto typed Go structures and
// back.
//
// A structure declares its fields once, in FillInitializer, and the same
// declaration drives parsing, writing and JSON Schema projection:
//
//	type Item struct {
//		ID   int64
//		Note wirebind.Optional[string]
//	}
//
//	func (it *Item) FillInitializer(in *wirebind.Initializer) {
//		wirebind.RequiredField(in, "id", &it.ID, wirebind.IntegerValue())
//		wirebind.OptionalField(in, "note", &it.Note, wirebind.String())
//	}
//
//	var it Item
//	err := wirebind.Unmarshal([]byte(`{"id":5}`), &it)
//	out, err := wirebind.Marshal(&it)
//
// Overview:
//
//   - Converters (String, IntegerValue, Boolean, NullValue, AnyValue,
//     ArrayOf, MapOf, Object, Either) turn generic JSON values into typed
//     values and write them back.
//   - Parse reports every missing or malformed field at once as Issues, each
//     carrying a JSON Pointer, a stable code and a localized message.
//   - Structures built from capability groups forward FillInitializer with
//     Compose; a key declared twice panics with *SchemaDefinitionError.
//   - ParseFrom and StreamParse read raw input through a Source, with
//     duplicate-key, depth and size enforcement.
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations under internal/.
//   - Tokenizers live under source/, string-encoded domain values under codec/.
//   - Prefer black-box testing against public APIs.
package wirebind
