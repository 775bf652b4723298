// Package serx converts persistent record graphs to and from plain dictionaries and JSON.
//
// A record is a pointer to a struct whose fields are either scalars (strings,
// numbers, booleans, times) or relationships to other records. serx walks the
// properties of a record, hides the ones marked as not serialized, follows
// relationships on request and stops at records it has already encoded, so
// cyclic graphs always terminate.
//
// # Quick Start
//
// Describe records with serx tags:
//
//	type Team struct {
//	    ID      int     `serx:"id"`
//	    Name    string  `serx:"name"`
//	    Members []*User `serx:"members,many"`
//	}
//
//	type User struct {
//	    ID       int    `serx:"id"`
//	    Name     string `serx:"name"`
//	    Password string `serx:"_password,noserialize"`
//	    Team     *Team  `serx:"team,one"`
//	}
//
// Encode and decode:
//
//	s := serx.NewDefault()
//	dict, err := s.ToDict(user, serx.FollowRelationships(true))
//	text, err := s.ToJSON(user)
//
//	u := &User{}
//	_, err = s.FromJSON(u, `{"id": 1, "name": "alice", "password": "x"}`)
//
// # Struct Tags
//
//   - serx:"key" - scalar property stored under key
//   - serx:"key,one" - to-one relationship (pointer, struct or interface field)
//   - serx:"key,many" - to-many relationship (slice or array of records)
//   - serx:"key,noserialize" - only encoded with ForceSerialization(true)
//   - serx:"-" - field ignored
//
// Untagged exported fields are scalar properties keyed by their Go name. Leading
// underscores are removed from keys in dictionaries, so "_password" is emitted and
// read back as "password".
//
// # Explicit Schemas
//
// Types that cannot carry tags are described with a property table:
//
//	err := serx.Register[Order](s.Registry(), []serx.Property{
//	    serx.Field("id", func(o *Order) int { return o.ID }, func(o *Order, v int) { o.ID = v }),
//	    serx.One("customer", func(o *Order) *Customer { return o.Customer }),
//	    serx.Many("lines", func(o *Order) []*Line { return o.Lines }),
//	}, serx.WithExtraFields(func(o *Order) map[string]any {
//	    return map[string]any{"total": o.Total()}
//	}))
//
// # Relationships and Cycles
//
// With FollowRelationships(true) a to-one target becomes a nested dictionary, or
// nil when absent. A to-many collection becomes a list of dictionaries, or an
// empty list. A relationship leading to a record already encoded in the same call
// is left out, and a to-many collection is left out entirely when any of its
// records has been encoded.
//
// # Codecs
//
// ToJSON and FromJSON use encoding/json by default. jsoniter and sonic codecs
// can be selected through Config.Codec, WithCodec or UsingCodec.
//
// # Error Handling
//
// All errors wrap sentinels that can be matched with errors.Is:
//
//	if errors.Is(err, serx.ErrMissingField) {
//	    // a required key was absent from the input
//	}
//
// # Observability
//
// The serializer is silent by default. WithObservability installs a hook; NewLoggingHook
// and NewMetricsHook provide slog logging and in-process metrics.
package serx
