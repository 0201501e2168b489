package pdf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lengths(t *testing.T, r Resolver, streams []types.StreamDict) []int64 {
	t.Helper()
	out := make([]int64, len(streams))
	for i, sd := range streams {
		out[i] = EncodedLength(r, sd)
	}
	return out
}

func TestCollectContentsNone(t *testing.T) {
	streams, err := CollectContents(objectTable{}, types.Dict{"Type": types.Name("Page")})
	require.NoError(t, err)
	assert.Empty(t, streams)
}

func TestCollectContentsSingle(t *testing.T) {
	table := objectTable{5: stream(500)}

	// indirect
	streams, err := CollectContents(table, types.Dict{"Contents": ref(5)})
	require.NoError(t, err)
	assert.Equal(t, []int64{500}, lengths(t, table, streams))

	// direct
	streams, err = CollectContents(table, types.Dict{"Contents": stream(42)})
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, lengths(t, table, streams))
}

func TestCollectContentsArrayKeepsOrder(t *testing.T) {
	table := objectTable{
		1: stream(100),
		2: stream(200),
		3: stream(300),
		4: types.Array{ref(3), ref(1), ref(2)},
	}

	streams, err := CollectContents(table, types.Dict{"Contents": types.Array{ref(1), ref(2), ref(3)}})
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{100, 200, 300}, lengths(t, table, streams)); diff != "" {
		t.Errorf("content order mismatch (-want +got):\n%s", diff)
	}

	// the array itself may be an indirect object
	streams, err = CollectContents(table, types.Dict{"Contents": ref(4)})
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{300, 100, 200}, lengths(t, table, streams)); diff != "" {
		t.Errorf("content order mismatch (-want +got):\n%s", diff)
	}
}

func TestContentBytesIgnoreArrayOrder(t *testing.T) {
	table := objectTable{1: stream(100), 2: stream(250), 3: stream(7)}
	orders := []types.Array{
		{ref(1), ref(2), ref(3)},
		{ref(3), ref(2), ref(1)},
		{ref(2), ref(3), ref(1)},
	}

	for _, order := range orders {
		report, err := AnalyzePage(table, Page{Number: 1, Dict: types.Dict{"Contents": order}})
		require.NoError(t, err)
		assert.Equal(t, int64(357), report.ContentBytes)
	}
}

func TestCollectContentsWrongKind(t *testing.T) {
	table := objectTable{1: types.Integer(3)}

	_, err := CollectContents(table, types.Dict{"Contents": types.Name("Stream")})
	var de *DecodeError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "Contents", de.Key)

	_, err = CollectContents(table, types.Dict{"Contents": types.Array{ref(1)}})
	require.True(t, errors.As(err, &de), "got %v", err)
}

func TestCollectXObjectsMissing(t *testing.T) {
	table := objectTable{}

	for name, page := range map[string]types.Dict{
		"no resources":      {},
		"empty resources":   {"Resources": types.Dict{}},
		"null xobject dict": {"Resources": types.Dict{"XObject": nil}},
	} {
		streams, err := CollectXObjects(table, page)
		require.NoError(t, err, name)
		assert.Empty(t, streams, name)
	}
}

func TestCollectXObjects(t *testing.T) {
	table := objectTable{
		1: stream(4096),
		2: stream(1000),
		3: types.Dict{"Im1": ref(1), "Fm1": ref(2), "Im2": stream(24)},
		4: types.Dict{"XObject": ref(3), "Font": types.Dict{}},
	}

	streams, err := CollectXObjects(table, types.Dict{"Resources": ref(4)})
	require.NoError(t, err)
	require.Len(t, streams, 3)

	var total int64
	for _, n := range lengths(t, table, streams) {
		total += n
	}
	assert.Equal(t, int64(5120), total)
}

func TestCollectXObjectsWrongKind(t *testing.T) {
	var de *DecodeError

	_, err := CollectXObjects(objectTable{}, types.Dict{"Resources": types.Array{}})
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "Resources", de.Key)

	_, err = CollectXObjects(objectTable{}, types.Dict{"Resources": types.Dict{"XObject": types.Integer(1)}})
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "XObject", de.Key)

	_, err = CollectXObjects(objectTable{}, types.Dict{"Resources": types.Dict{"XObject": types.Dict{"Im0": types.Dict{}}}})
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "XObject/Im0", de.Key)
}

// sharedTable mirrors pdftest.SharedContents as in-memory objects
func sharedTable() (objectTable, []Page) {
	table := objectTable{
		6:  stream(500),
		7:  stream(300),
		8:  stream(200),
		9:  types.StreamDict{Dict: types.Dict{"Subtype": types.Name("Image"), "Length": ref(10)}},
		10: types.Integer(4096),
	}
	letter := types.NewRectangle(0, 0, 612, 792)
	pages := []Page{
		{Number: 1, MediaBox: letter, Dict: types.Dict{"Contents": ref(6), "Resources": types.Dict{}}},
		{Number: 2, MediaBox: letter, Dict: types.Dict{
			"Contents":  types.Array{ref(7), ref(8)},
			"Resources": types.Dict{"XObject": types.Dict{"Im1": ref(9)}},
		}},
		{Number: 3, MediaBox: types.NewRectangle(0, 0, 595, 842), Dict: types.Dict{"Contents": ref(6)}},
	}
	return table, pages
}

func TestAnalyzePageSharedContents(t *testing.T) {
	table, pages := sharedTable()

	want := []PageReport{
		{Number: 1, Width: 612, Height: 792, ContentBytes: 500},
		{Number: 2, Width: 612, Height: 792, ContentBytes: 500, XObjectBytes: 4096, XObjectCount: 1},
		{Number: 3, Width: 595, Height: 842, ContentBytes: 500},
	}

	var got []PageReport
	for _, p := range pages {
		report, err := AnalyzePage(table, p)
		require.NoError(t, err)
		got = append(got, report)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("page reports mismatch (-want +got):\n%s", diff)
	}

	// stream 6 is counted on both pages that use it
	doc := DocumentReport{Pages: got}
	assert.Equal(t, int64(1500), doc.ContentTotal())
	assert.Greater(t, doc.ContentTotal(), int64(500+300+200))
}

func TestAnalyzePageDefaultMediaBox(t *testing.T) {
	report, err := AnalyzePage(objectTable{}, Page{Number: 4})
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultPageWidth), report.Width)
	assert.Equal(t, float64(DefaultPageHeight), report.Height)
	assert.Zero(t, report.ContentBytes)
	assert.Zero(t, report.XObjectCount)
}

func TestAnalyzePageMalformed(t *testing.T) {
	_, err := AnalyzePage(objectTable{}, Page{Number: 2, Dict: types.Dict{"Contents": types.Integer(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

type fakeRebuilder map[int]int64

func (f fakeRebuilder) RebuildSize(pageNr int) (int64, error) {
	n, ok := f[pageNr]
	if !ok {
		return 0, errors.New("cannot rebuild")
	}
	return n, nil
}

// rebuildingTable is a resolver that can also rebuild pages
type rebuildingTable struct {
	objectTable
	fakeRebuilder
}

func TestAnalyzePageStandalone(t *testing.T) {
	table, pages := sharedTable()
	rb := fakeRebuilder{1: 1200, 2: 6000}

	report, err := AnalyzePage(table, pages[1], WithStandalone(true), WithRebuilder(rb))
	require.NoError(t, err)
	assert.Equal(t, int64(6000), report.Standalone)
	assert.NoError(t, report.StandaloneErr)

	// a failed rebuild leaves the other numbers intact
	report, err = AnalyzePage(table, pages[2], WithStandalone(true), WithRebuilder(rb))
	require.NoError(t, err)
	assert.Error(t, report.StandaloneErr)
	assert.Zero(t, report.Standalone)
	assert.Equal(t, int64(500), report.ContentBytes)

	// the resolver doubles as rebuilder
	report, err = AnalyzePage(rebuildingTable{table, rb}, pages[0], WithStandalone(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1200), report.Standalone)

	// without a rebuilder the column is marked as failed
	report, err = AnalyzePage(table, pages[0], WithStandalone(true))
	require.NoError(t, err)
	assert.Error(t, report.StandaloneErr)

	// disabled by default
	report, err = AnalyzePage(table, pages[0], WithRebuilder(rb))
	require.NoError(t, err)
	assert.Zero(t, report.Standalone)
	assert.NoError(t, report.StandaloneErr)
}
