package wirebind_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirebind "github.com/reoring/wirebind"
)

type item struct {
	ID   int64
	Note wirebind.Optional[string]
}

func (it *item) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "id", &it.ID, wirebind.IntegerValue())
	wirebind.OptionalField(in, "note", &it.Note, wirebind.String())
}

func TestItem_Example(t *testing.T) {
	var it item
	require.NoError(t, wirebind.Unmarshal([]byte(`{"id": 5}`), &it))
	assert.Equal(t, int64(5), it.ID)
	assert.False(t, it.Note.IsSet())

	err := wirebind.Unmarshal([]byte(`{"note": "x"}`), &it)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, wirebind.CodeRequired, iss[0].Code)
	assert.Equal(t, "/id", iss[0].Path)
	assert.Equal(t, "missing required field id", iss[0].Message)

	it = item{}
	require.NoError(t, wirebind.Unmarshal([]byte(`{"id": 5, "note": "x"}`), &it))
	out, err := wirebind.Marshal(&it)
	require.NoError(t, err)
	assert.Equal(t, `{"id":5,"note":"x"}`, string(out))
}

func TestParse_ReplacesPreviousOptional(t *testing.T) {
	it := item{Note: wirebind.Some("stale")}
	require.NoError(t, wirebind.Unmarshal([]byte(`{"id":1}`), &it))
	assert.False(t, it.Note.IsSet())
}

type settings struct {
	Name    string
	Port    int64
	Enabled bool
	Retries wirebind.Optional[int64]
	Verbose wirebind.Optional[bool]
	Label   wirebind.Optional[string]
}

func (s *settings) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "name", &s.Name, wirebind.String())
	wirebind.RequiredField(in, "port", &s.Port, wirebind.IntegerValue())
	wirebind.RequiredField(in, "enabled", &s.Enabled, wirebind.Boolean())
	wirebind.OptionalField(in, "retries", &s.Retries, wirebind.IntegerValue())
	wirebind.OptionalField(in, "verbose", &s.Verbose, wirebind.Boolean())
	wirebind.OptionalField(in, "label", &s.Label, wirebind.String())
}

func TestParse_ReportsEveryMissingRequiredField(t *testing.T) {
	full := map[string]any{"name": "a", "port": 1, "enabled": true}
	keys := []string{"name", "port", "enabled"}

	for _, drop := range keys {
		obj := clone(full)
		delete(obj, drop)
		var s settings
		iss, ok := wirebind.AsIssues(wirebind.Parse(context.Background(), obj, &s))
		require.True(t, ok, drop)
		assert.Equal(t, []string{"/" + drop}, iss.Paths())
		assert.Equal(t, []string{wirebind.CodeRequired}, iss.Codes())
	}

	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			obj := clone(full)
			delete(obj, keys[i])
			delete(obj, keys[j])
			var s settings
			iss, ok := wirebind.AsIssues(wirebind.Parse(context.Background(), obj, &s))
			require.True(t, ok)
			assert.ElementsMatch(t, []string{"/" + keys[i], "/" + keys[j]}, iss.Paths())
		}
	}
}

func TestParse_MixedFieldErrorsInDeclarationOrder(t *testing.T) {
	var s settings
	err := wirebind.Unmarshal([]byte(`{"port":"80","enabled":true,"retries":1.5,"label":7}`), &s)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"/name", "/port", "/retries", "/label"}, iss.Paths())
	assert.Equal(t, []string{
		wirebind.CodeRequired, wirebind.CodeInvalidType, wirebind.CodeInvalidType, wirebind.CodeInvalidType,
	}, iss.Codes())
	assert.Equal(t, "integer", iss[1].Params["expected"])
	assert.Equal(t, "string", iss[1].Params["actual"])
	assert.Equal(t, "expected integer, got string", iss[1].Message)
}

func TestParse_FailFastStopsAtFirstIssue(t *testing.T) {
	var s settings
	err := wirebind.ParseFrom(context.Background(), &s, wirebind.JSONBytes([]byte(`{"label":7}`)), wirebind.ParseOpt{FailFast: true})
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"/name"}, iss.Paths())
}

func TestOptional_AbsentVersusFalsy(t *testing.T) {
	s := settings{Name: "n", Port: 0, Enabled: false, Retries: wirebind.Some[int64](0), Verbose: wirebind.Some(false)}
	out, err := wirebind.Marshal(&s)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"n","port":0,"enabled":false,"retries":0,"verbose":false}`, string(out))

	var back settings
	require.NoError(t, wirebind.Unmarshal(out, &back))
	assert.Equal(t, s, back)
	assert.False(t, back.Label.IsSet())
}

func TestOptional_PresentNullIsNotAbsent(t *testing.T) {
	var s settings
	err := wirebind.Unmarshal([]byte(`{"name":"n","port":1,"enabled":true,"label":null}`), &s)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"/label"}, iss.Paths())
	assert.Equal(t, "null", iss[0].Params["actual"])
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	var it item
	require.NoError(t, wirebind.Unmarshal([]byte(`{"id":2,"extra":{"deep":[1]}}`), &it))
	out, err := wirebind.Marshal(&it)
	require.NoError(t, err)
	assert.Equal(t, `{"id":2}`, string(out))
}

func TestParse_RequiresObject(t *testing.T) {
	var it item
	for _, in := range []string{`[]`, `"id"`, `5`, `null`} {
		iss, ok := wirebind.AsIssues(wirebind.Unmarshal([]byte(in), &it))
		require.True(t, ok, in)
		assert.Equal(t, wirebind.CodeInvalidType, iss[0].Code, in)
		assert.Equal(t, "/", iss[0].Path, in)
	}
}

type window struct {
	From int64
	To   int64
}

func (w *window) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "from", &w.From, wirebind.IntegerValue())
	wirebind.RequiredField(in, "to", &w.To, wirebind.IntegerValue())
}

func (w *window) IsValid() error {
	if w.To < w.From {
		return errors.New("to before from")
	}
	if w.To-w.From > 100 {
		return wirebind.Issues{{Path: "/to", Code: "too_wide", Message: "window too wide"}}
	}
	return nil
}

func TestValidator(t *testing.T) {
	var w window
	require.NoError(t, wirebind.Unmarshal([]byte(`{"from":1,"to":2}`), &w))

	err := wirebind.Unmarshal([]byte(`{"from":3,"to":2}`), &w)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, wirebind.CodeSemanticInvalid, iss[0].Code)
	assert.EqualError(t, iss[0].Cause, "to before from")

	err = wirebind.Unmarshal([]byte(`{"from":0,"to":500}`), &w)
	iss, _ = wirebind.AsIssues(err)
	assert.Equal(t, []string{"too_wide"}, iss.Codes())
}

func TestValidator_SkippedWhenFieldsFail(t *testing.T) {
	var w window
	err := wirebind.Unmarshal([]byte(`{"from":3}`), &w)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{wirebind.CodeRequired}, iss.Codes())
}

// ---- composition ----

type named struct{ Name string }

func (n *named) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "name", &n.Name, wirebind.String())
}

type tagged struct{ Tags wirebind.Optional[[]string] }

func (t *tagged) FillInitializer(in *wirebind.Initializer) {
	wirebind.OptionalField(in, "tags", &t.Tags, wirebind.ArrayOf(wirebind.String()))
}

type resource struct {
	Named  named
	Tagged tagged
	Size   int64
}

func (r *resource) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &r.Named, &r.Tagged)
	wirebind.RequiredField(in, "size", &r.Size, wirebind.IntegerValue())
}

type renamed struct {
	Named named
	Alias named
}

func (r *renamed) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &r.Named, &r.Alias)
}

func TestCompose_DisjointGroups(t *testing.T) {
	require.NoError(t, wirebind.CheckSchema(&resource{}))

	var r resource
	in := `{"name":"disk","tags":["ssd","fast"],"size":10}`
	require.NoError(t, wirebind.Unmarshal([]byte(in), &r))
	assert.Equal(t, "disk", r.Named.Name)
	assert.Equal(t, []string{"ssd", "fast"}, r.Tagged.Tags.OrElse(nil))

	out, err := wirebind.Marshal(&r)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestCompose_CollisionRejected(t *testing.T) {
	err := wirebind.CheckSchema(&renamed{})
	var sde *wirebind.SchemaDefinitionError
	require.ErrorAs(t, err, &sde)
	assert.Equal(t, "name", sde.Key)

	assert.PanicsWithError(t, `wirebind: key "name" declared more than once`, func() { wirebind.MustSchema(&renamed{}) })
	// rejected even when the input never mentions the key
	assert.Panics(t, func() { _ = wirebind.Unmarshal([]byte(`{}`), &renamed{}) })
}

type bounds struct {
	Lo int64
	Hi int64
}

func (b *bounds) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "lo", &b.Lo, wirebind.IntegerValue())
	wirebind.RequiredField(in, "hi", &b.Hi, wirebind.IntegerValue())
}

func (b *bounds) IsValid() error {
	if b.Hi < b.Lo {
		return errors.New("hi below lo")
	}
	return nil
}

// PartialWrite emits hi first.
func (b *bounds) PartialWrite(w *wirebind.Writer) error {
	if err := w.Key("hi"); err != nil {
		return err
	}
	if err := w.Integer(b.Hi); err != nil {
		return err
	}
	if err := w.Key("lo"); err != nil {
		return err
	}
	return w.Integer(b.Lo)
}

type span struct {
	Bounds bounds
	Unit   string
}

func (s *span) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &s.Bounds)
	wirebind.RequiredField(in, "unit", &s.Unit, wirebind.String())
}

type shelf struct {
	Named named
	Span  span
}

func (s *shelf) FillInitializer(in *wirebind.Initializer) {
	wirebind.Compose(in, &s.Named, &s.Span)
}

func TestCompose_GroupHooksApply(t *testing.T) {
	var s span
	err := wirebind.Unmarshal([]byte(`{"lo":5,"hi":1,"unit":"cm"}`), &s)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok, "group validator must run when composed")
	assert.Equal(t, []string{wirebind.CodeSemanticInvalid}, iss.Codes())
	assert.EqualError(t, iss[0].Cause, "hi below lo")

	s = span{}
	require.NoError(t, wirebind.Unmarshal([]byte(`{"lo":1,"hi":2,"unit":"cm"}`), &s))
	out, err := wirebind.Marshal(&s)
	require.NoError(t, err)
	assert.Equal(t, `{"hi":2,"lo":1,"unit":"cm"}`, string(out))
}

func TestCompose_NestedGroupHooksApply(t *testing.T) {
	var s shelf
	err := wirebind.Unmarshal([]byte(`{"name":"a","lo":5,"hi":1,"unit":"cm"}`), &s)
	iss, ok := wirebind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{wirebind.CodeSemanticInvalid}, iss.Codes())

	s = shelf{}
	require.NoError(t, wirebind.Unmarshal([]byte(`{"unit":"cm","hi":9,"lo":3,"name":"a"}`), &s))
	out, err := wirebind.Marshal(&s)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","hi":9,"lo":3,"unit":"cm"}`, string(out))
}

func TestJSONSchema_FromDeclarations(t *testing.T) {
	s := wirebind.JSONSchema(&resource{})
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"name", "size"}, s.Required)
	assert.Equal(t, "array", s.Properties["tags"].Type)
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)
	assert.Equal(t, "integer", s.Properties["size"].Type)
}

type node struct {
	Name     string
	Children wirebind.Optional[[]node]
}

func (n *node) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "name", &n.Name, wirebind.String())
	wirebind.OptionalField(in, "children", &n.Children, wirebind.ArrayOf(wirebind.Object[node]()))
}

type section struct {
	Title string
	Subs  wirebind.Optional[[]section]
}

func (s *section) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "title", &s.Title, wirebind.String())
	wirebind.OptionalField(in, "subs", &s.Subs, wirebind.ArrayOf(wirebind.Object[section]()))
}

type document struct {
	Root section
}

func (d *document) FillInitializer(in *wirebind.Initializer) {
	wirebind.RequiredField(in, "root", &d.Root, wirebind.Object[section]())
}

func TestJSONSchema_SelfReference(t *testing.T) {
	var n node
	in := `{"name":"a","children":[{"name":"b","children":[{"name":"c"}]}]}`
	require.NoError(t, wirebind.Unmarshal([]byte(in), &n))

	s := wirebind.JSONSchema(&n)
	assert.Equal(t, "object", s.Type)
	children := s.Properties["children"]
	require.NotNil(t, children.Items)
	assert.Equal(t, "#", children.Items.Ref)
	assert.Empty(t, s.Defs)
}

func TestJSONSchema_RecursionBelowRoot(t *testing.T) {
	s := wirebind.JSONSchema(&document{})
	root := s.Properties["root"]
	assert.Equal(t, "object", root.Type)
	assert.Equal(t, "#/$defs/section", root.Properties["subs"].Items.Ref)

	def, ok := s.Defs["section"]
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, def.Required)
	assert.Equal(t, "#/$defs/section", def.Properties["subs"].Items.Ref)
}

func TestSchemaOf_RecursiveElement(t *testing.T) {
	s := wirebind.ArrayOf(wirebind.Object[node]()).JSONSchema()
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, "object", s.Items.Type)
	assert.Equal(t, "#/$defs/node", s.Items.Properties["children"].Items.Ref)
	require.Contains(t, s.Defs, "node")
}

func TestInitializer_Accessors(t *testing.T) {
	in := wirebind.NewInitializer()
	(&settings{}).FillInitializer(in)
	assert.Equal(t, 6, in.Len())
	assert.Equal(t, []string{"name", "port", "enabled", "retries", "verbose", "label"}, in.Keys())
	assert.Equal(t, []string{"name", "port", "enabled"}, in.Required())
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
