package library

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lector/internal/catalog"
)

func TestAuthors_CreateAndList(t *testing.T) {
	_, c := newFake(t)
	authors := NewAuthors(c, nil)
	ctx := context.Background()

	_, err := authors.Submit(ctx, AuthorFields{FirstName: "Juan", LastName: "Rulfo", BirthDate: "1917-05-16"})
	assert.ErrorIs(t, err, ErrFormHidden)

	assert.Equal(t, FormCreate, authors.ToggleForm())
	notice, err := authors.Submit(ctx, AuthorFields{FirstName: " Juan ", LastName: "Rulfo", BirthDate: "1917-05-16T08:00"})
	require.NoError(t, err)
	assert.Equal(t, "Author created", notice.Text)

	view := authors.Snapshot()
	assert.Equal(t, FormHidden, view.Form.Mode)
	require.Len(t, view.List.Records, 1)
	assert.Equal(t, "Juan", view.List.Records[0].FirstName)
	assert.Equal(t, "1917-05-16T00:00:00.000Z", view.List.Records[0].BirthDate)
}

func TestAuthors_CreateValidation(t *testing.T) {
	fake, c := newFake(t)
	authors := NewAuthors(c, nil)
	ctx := context.Background()

	_, err := authors.Create(ctx, AuthorFields{FirstName: "Juan"})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = authors.Create(ctx, AuthorFields{FirstName: "Juan", LastName: "Rulfo", BirthDate: "mayo"})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, 0, fake.Requests())
}

func TestAuthors_Lookups(t *testing.T) {
	fake, c := newFake(t)
	seeded := fake.SeedAuthor(catalog.AuthorInput{FirstName: "Rosario", LastName: "Castellanos", BirthDate: "1925-05-25T00:00:00.000Z"})
	authors := NewAuthors(c, nil)
	ctx := context.Background()

	result, err := authors.FindByGUID(ctx, seeded.GUID)
	require.NoError(t, err)
	require.True(t, result.Found())
	assert.Equal(t, seeded, result.Record)

	result, err = authors.FindByName(ctx, "Rosario Castellanos")
	require.NoError(t, err)
	assert.Equal(t, LookupFound, result.Kind)

	result, err = authors.FindByName(ctx, "Borges")
	require.NoError(t, err)
	assert.Equal(t, LookupNotFound, result.Kind)
	assert.Equal(t, LookupNotFound, authors.Snapshot().Search.Result.Kind)

	fake.FailWith(http.StatusInternalServerError)
	result, err = authors.FindByGUID(ctx, seeded.GUID)
	require.NoError(t, err)
	assert.Equal(t, LookupFailed, result.Kind)

	authors.ClearSearch()
	view := authors.Snapshot()
	assert.True(t, view.Search.Visible)
	assert.Equal(t, LookupNone, view.Search.Result.Kind)
}

func TestAuthors_LookupPreflight(t *testing.T) {
	fake, c := newFake(t)
	authors := NewAuthors(c, nil)
	ctx := context.Background()

	_, err := authors.FindByGUID(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = authors.FindByName(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = authors.FindByGUID(ctx, "rosario")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, 0, fake.Requests())
}

func TestAuthors_ToggleFormClears(t *testing.T) {
	_, c := newFake(t)
	authors := NewAuthors(c, nil)

	authors.ToggleForm()
	_, _ = authors.Submit(context.Background(), AuthorFields{FirstName: "x"})
	assert.Equal(t, "x", authors.Snapshot().Form.Fields.FirstName)

	assert.Equal(t, FormHidden, authors.ToggleForm())
	assert.Equal(t, AuthorFields{}, authors.Snapshot().Form.Fields)
}
