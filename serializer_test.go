package serx

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type team struct {
	ID      int     `serx:"id"`
	Name    string  `serx:"name"`
	Members []*user `serx:"members,many"`
}

type user struct {
	ID        int       `serx:"id"`
	Name      string    `serx:"name"`
	Password  string    `serx:"_password,noserialize"`
	CreatedAt time.Time `serx:"created_at"`
	Team      *team     `serx:"team,one"`
	Cache     string    `serx:"-"`
}

type partner struct {
	ID      int      `serx:"id"`
	Partner *partner `serx:"partner,one"`
}

type invoice struct {
	Number string  `serx:"number"`
	Amount float64 `serx:"amount"`
}

func (i *invoice) ExtraFields() map[string]any {
	return map[string]any{
		"amount": "redacted",
		"label":  "INV-" + i.Number,
	}
}

type channelRecord struct {
	ID int      `serx:"id"`
	Ch chan int `serx:"ch"`
}

type badTag struct {
	ID int `serx:"id,bogus"`
}

func newTeamFixture() (*team, *user, *user) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tm := &team{ID: 10, Name: "core"}
	alice := &user{ID: 1, Name: "alice", Password: "secret", CreatedAt: created, Team: tm}
	bob := &user{ID: 2, Name: "bob", Password: "hunter2", CreatedAt: created, Team: tm}
	tm.Members = []*user{alice, bob}
	return tm, alice, bob
}

func TestToDict_Scalars(t *testing.T) {
	s := NewDefault()
	_, alice, _ := newTeamFixture()

	dict, err := s.ToDict(alice)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":         1,
		"name":       "alice",
		"created_at": alice.CreatedAt,
	}, dict)
}

func TestToDict_Idempotent(t *testing.T) {
	s := NewDefault()
	tm, _, _ := newTeamFixture()

	first, err := s.ToDict(tm, FollowRelationships(true))
	require.NoError(t, err)
	second, err := s.ToDict(tm, FollowRelationships(true))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToDict_Visibility(t *testing.T) {
	s := NewDefault()
	_, alice, _ := newTeamFixture()

	t.Run("hidden by default", func(t *testing.T) {
		dict, err := s.ToDict(alice)
		require.NoError(t, err)
		assert.NotContains(t, dict, "password")
		assert.NotContains(t, dict, "_password")
		assert.NotContains(t, dict, "Cache")
	})

	t.Run("forced", func(t *testing.T) {
		dict, err := s.ToDict(alice, ForceSerialization(true))
		require.NoError(t, err)
		assert.Equal(t, "secret", dict["password"])
		assert.NotContains(t, dict, "_password")
	})
}

func TestToDict_RelationshipsNotFollowed(t *testing.T) {
	s := NewDefault()
	tm, alice, _ := newTeamFixture()

	dict, err := s.ToDict(alice)
	require.NoError(t, err)
	assert.NotContains(t, dict, "team")

	dict, err = s.ToDict(tm)
	require.NoError(t, err)
	assert.NotContains(t, dict, "members")
}

func TestToDict_FollowToMany(t *testing.T) {
	s := NewDefault()
	tm, _, _ := newTeamFixture()

	dict, err := s.ToDict(tm, FollowRelationships(true))
	require.NoError(t, err)

	members, ok := dict["members"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0]["name"])
	assert.Equal(t, "bob", members[1]["name"])
	// back edge to the team is already visited
	assert.NotContains(t, members[0], "team")
	assert.NotContains(t, members[1], "team")
}

func TestToDict_ToManySkippedWhenAnyMemberVisited(t *testing.T) {
	s := NewDefault()
	_, alice, _ := newTeamFixture()

	dict, err := s.ToDict(alice, FollowRelationships(true))
	require.NoError(t, err)

	nested, ok := dict["team"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, nested["id"])
	// alice is visited, so the whole member list is dropped, bob included
	assert.NotContains(t, nested, "members")
}

func TestToDict_EmptyRelationships(t *testing.T) {
	s := NewDefault()

	dict, err := s.ToDict(&team{ID: 1, Name: "empty"}, FollowRelationships(true))
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{}, dict["members"])

	dict, err = s.ToDict(&user{ID: 1}, FollowRelationships(true))
	require.NoError(t, err)
	require.Contains(t, dict, "team")
	assert.Nil(t, dict["team"])
}

func TestToDict_Cycle(t *testing.T) {
	s := NewDefault()
	a := &partner{ID: 1}
	b := &partner{ID: 2}
	a.Partner = b
	b.Partner = a

	dict, err := s.ToDict(a, FollowRelationships(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":      1,
		"partner": map[string]any{"id": 2},
	}, dict)

	self := &partner{ID: 3}
	self.Partner = self
	dict, err = s.ToDict(self, FollowRelationships(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 3}, dict)
}

func TestToDict_IdentityNotEquality(t *testing.T) {
	s := NewDefault()
	a := &partner{ID: 1, Partner: &partner{ID: 1}}

	dict, err := s.ToDict(a, FollowRelationships(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "partner": nil}, dict["partner"])
}

func TestToDict_ExtraFieldsOverride(t *testing.T) {
	s := NewDefault()

	dict, err := s.ToDict(&invoice{Number: "42", Amount: 9.5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"number": "42",
		"amount": "redacted",
		"label":  "INV-42",
	}, dict)
}

func TestToDict_InputErrors(t *testing.T) {
	s := NewDefault()

	_, err := s.ToDict(nil)
	assert.ErrorIs(t, err, ErrNilRecord)

	_, err = s.ToDict((*user)(nil))
	assert.ErrorIs(t, err, ErrNilRecord)

	_, err = s.ToDict(user{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.True(t, IsInputError(err))

	_, err = s.ToDict(&badTag{})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestToJSON(t *testing.T) {
	_, alice, _ := newTeamFixture()

	for _, name := range CodecNames() {
		t.Run(name, func(t *testing.T) {
			codec, err := CodecByName(name)
			require.NoError(t, err)
			s, err := New(Config{Codec: name})
			require.NoError(t, err)
			assert.Equal(t, codec.Name(), s.Codec().Name())

			text, err := s.ToJSON(alice, FollowRelationships(true))
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"id": 1,
				"name": "alice",
				"created_at": "2024-01-02T03:04:05Z",
				"team": {"id": 10, "name": "core"}
			}`, text)
		})
	}
}

func TestToJSON_UsingCodec(t *testing.T) {
	s := NewDefault()
	text, err := s.ToJSON(&partner{ID: 5}, UsingCodec(SonicCodec()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 5}`, text)
}

func TestToJSON_CodecError(t *testing.T) {
	s := NewDefault()

	_, err := s.ToJSON(&channelRecord{ID: 1, Ch: make(chan int)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodec)
	assert.True(t, IsEncodeError(err))
}

func TestFromDict(t *testing.T) {
	s := NewDefault()

	u := &user{Cache: "kept"}
	out, err := s.FromDict(u, map[string]any{
		"id":         float64(7),
		"name":       "carol",
		"password":   "pw",
		"created_at": "2024-01-02T03:04:05Z",
		"team":       map[string]any{"id": 1},
		"unknown":    true,
	})
	require.NoError(t, err)
	assert.Same(t, u, out)

	assert.Equal(t, 7, u.ID)
	assert.Equal(t, "carol", u.Name)
	assert.Equal(t, "pw", u.Password)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(u.CreatedAt))
	assert.Nil(t, u.Team)
	assert.Equal(t, "kept", u.Cache)
}

func TestFromDict_MissingField(t *testing.T) {
	s := NewDefault()

	u := &user{Name: "untouched"}
	_, err := s.FromDict(u, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.True(t, IsDecodeError(err))

	_, err = s.FromDict(u, map[string]any{"id": 1, "created_at": nil, "password": "x"})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "'name'")
	assert.Equal(t, "untouched", u.Name)
	assert.Equal(t, 0, u.ID)
}

func TestFromDict_AssignmentError(t *testing.T) {
	s := NewDefault()

	_, err := s.FromDict(&partner{}, map[string]any{"id": "not a number"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldAssignment)
}

type gauge struct {
	Level int8   `serx:"level"`
	Count int    `serx:"count"`
	Size  uint16 `serx:"size"`
}

func TestFromDict_NumericConversion(t *testing.T) {
	s := NewDefault()

	valid := func() map[string]any {
		return map[string]any{"level": float64(-128), "count": float64(3), "size": float64(65535)}
	}

	g := &gauge{}
	_, err := s.FromDict(g, valid())
	require.NoError(t, err)
	assert.Equal(t, gauge{Level: -128, Count: 3, Size: 65535}, *g)

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"int8 overflow", "level", float64(300)},
		{"int8 underflow", "level", float64(-129)},
		{"int8 overflow from int", "level", 128},
		{"fraction into int", "count", 1.7},
		{"NaN into int", "count", math.NaN()},
		{"negative into uint", "size", float64(-1)},
		{"negative int into uint", "size", -5},
		{"uint16 overflow", "size", float64(65536)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			data[tt.key] = tt.value

			g := &gauge{}
			_, err := s.FromDict(g, data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFieldAssignment)
			assert.Contains(t, err.Error(), "'"+tt.key+"'")
		})
	}

	t.Run("from json", func(t *testing.T) {
		_, err := s.FromJSON(&gauge{}, `{"level": 300, "count": 1.7, "size": 1}`)
		assert.ErrorIs(t, err, ErrFieldAssignment)
	})
}

func TestFromDict_NilResetsField(t *testing.T) {
	s := NewDefault()
	u := &user{Name: "old"}

	_, err := s.FromDict(u, map[string]any{"id": 1, "name": nil, "password": "", "created_at": nil})
	require.NoError(t, err)
	assert.Equal(t, "", u.Name)
	assert.True(t, u.CreatedAt.IsZero())
}

func TestRoundTrip(t *testing.T) {
	s := NewDefault()
	_, alice, _ := newTeamFixture()

	text, err := s.ToJSON(alice, ForceSerialization(true))
	require.NoError(t, err)

	decoded := &user{}
	_, err = s.FromJSON(decoded, text)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, decoded.ID)
	assert.Equal(t, alice.Name, decoded.Name)
	assert.Equal(t, alice.Password, decoded.Password)
	assert.True(t, alice.CreatedAt.Equal(decoded.CreatedAt))

	dict, err := s.ToDict(alice)
	require.NoError(t, err)
	again, err := s.ToDict(decoded)
	require.NoError(t, err)
	assert.Equal(t, dict["id"], again["id"])
	assert.Equal(t, dict["name"], again["name"])
}

func TestFromJSON_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed", `{"id": `},
		{"not json", `hello`},
		{"null", `null`},
		{"array", `[1, 2]`},
		{"number", `42`},
	}

	for _, codec := range CodecNames() {
		s, err := New(Config{Codec: codec})
		require.NoError(t, err)

		for _, tt := range tests {
			t.Run(codec+"/"+tt.name, func(t *testing.T) {
				_, err := s.FromJSON(&partner{}, tt.text)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
			})
		}
	}
}

func TestFromJSON_InputErrors(t *testing.T) {
	s := NewDefault()

	_, err := s.FromJSON(nil, `{"id": 1}`)
	assert.ErrorIs(t, err, ErrNilRecord)

	_, err = s.FromJSON(partner{}, `{"id": 1}`)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseDict(t *testing.T) {
	s := NewDefault()

	data, err := s.ParseDict(`{"id": 1, "tags": ["a"]}`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, []any{"a"}, data["tags"])
}

func TestNew(t *testing.T) {
	t.Run("defaults from config", func(t *testing.T) {
		s, err := New(Config{FollowRelationships: true, ForceSerialization: true})
		require.NoError(t, err)

		_, alice, _ := newTeamFixture()
		dict, err := s.ToDict(alice)
		require.NoError(t, err)
		assert.Contains(t, dict, "team")
		assert.Contains(t, dict, "password")

		dict, err = s.ToDict(alice, FollowRelationships(false), ForceSerialization(false))
		require.NoError(t, err)
		assert.NotContains(t, dict, "team")
		assert.NotContains(t, dict, "password")
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := New(Config{Codec: "xml"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("nil options", func(t *testing.T) {
		_, err := New(Config{}, WithCodec(nil))
		assert.Error(t, err)
		_, err = New(Config{}, WithRegistry(nil))
		assert.Error(t, err)
		_, err = New(Config{}, WithObservability(nil))
		assert.Error(t, err)
	})

	t.Run("custom tag name", func(t *testing.T) {
		type legacy struct {
			ID   int    `db:"legacy_id"`
			Name string `serx:"ignored" db:"label"`
		}
		s, err := New(Config{TagName: "db"})
		require.NoError(t, err)

		dict, err := s.ToDict(&legacy{ID: 1, Name: "x"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"legacy_id": 1, "label": "x"}, dict)
	})
}

func TestSerializer_Concurrent(t *testing.T) {
	s := NewDefault()
	tm, _, _ := newTeamFixture()

	expected, err := s.ToDict(tm, FollowRelationships(true))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dict, err := s.ToDict(tm, FollowRelationships(true))
			if err != nil {
				errs <- err
				return
			}
			assert.Equal(t, expected, dict)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

type marker struct{}

type flagged struct {
	ID      int       `serx:"id"`
	Primary *marker   `serx:"primary,one"`
	Backup  *marker   `serx:"backup,one"`
	All     []*marker `serx:"all,many"`
}

func TestToDict_ZeroSizeRecordsAreDistinct(t *testing.T) {
	s := NewDefault()
	a, b := &marker{}, &marker{}
	f := &flagged{ID: 1, Primary: a, Backup: b, All: []*marker{a, b}}

	dict, err := s.ToDict(f, FollowRelationships(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":      1,
		"primary": map[string]any{},
		"backup":  map[string]any{},
		"all":     []map[string]any{{}, {}},
	}, dict)
}
