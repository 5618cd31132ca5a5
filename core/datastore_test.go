package core

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type TestPatch struct {
	Name  *string `json:"name"`
	Value *int    `json:"value"`
}

func mergeTestData(base TestData, patch TestPatch) TestData {
	if patch.Name != nil {
		base.Name = *patch.Name
	}
	if patch.Value != nil {
		base.Value = *patch.Value
	}
	return base
}

func newTestDatastore(fs afero.Fs) *FileBackedDatastore[TestData, TestPatch] {
	return NewFileBackedDatastore(fs, "/data/test.json", func() TestData {
		return TestData{Name: "Test", Value: 42}
	}, mergeTestData)
}

func TestFileBackedDatastore_SaveAndFetch(t *testing.T) {
	ds := newTestDatastore(afero.NewMemMapFs())

	value := 7
	saved, err := ds.Save(TestPatch{Value: &value})
	require.NoError(t, err)
	assert.Equal(t, TestData{Name: "Test", Value: 7}, saved)

	fetched, err := ds.Fetch()
	require.NoError(t, err)
	assert.Equal(t, saved, fetched)
}

func TestFileBackedDatastore_CreatesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	ds := newTestDatastore(fs)

	require.NoError(t, ds.Replace(TestData{Name: "n"}))

	ok, err := afero.DirExists(fs, "/data")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := afero.ReadFile(fs, ds.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"n\",\n  \"value\": 0\n}", string(data))
}

func TestFileBackedDatastore_FetchError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/test.json", []byte("not json"), os.ModePerm))
	ds := newTestDatastore(fs)

	data, err := ds.Fetch()
	assert.Error(t, err)
	assert.Equal(t, TestData{Name: "Test", Value: 42}, data)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestFileBackedDatastore_ReadOnlyFs(t *testing.T) {
	ds := newTestDatastore(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	name := "x"
	next, err := ds.Save(TestPatch{Name: &name})
	assert.Error(t, err)
	assert.Equal(t, "x", next.Name)
}
