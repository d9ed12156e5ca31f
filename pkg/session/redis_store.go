// Package session implements a gorilla/sessions Store that keeps session
// values in Redis and only a signed session id in the cookie.
package session

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "session_"

type RedisStore struct {
	client    redis.UniversalClient
	Codecs    []securecookie.Codec
	Options   *sessions.Options
	keyPrefix string
	// ttl bounds how long an abandoned session lingers in Redis. Expiry of
	// an active session is decided by the caller, not by this TTL.
	ttl time.Duration
}

// NewRedisStore returns a store signing ids with keyPairs (see
// securecookie.CodecsFromPairs).
func NewRedisStore(client redis.UniversalClient, ttl time.Duration, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		client: client,
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
	}
}

// Get returns the session cached for this request, loading it on first use.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, forged or
// unknown id yields a fresh session with an empty ID; only Redis failures
// are returned as errors.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, nil
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		session.ID = ""
		return session, err
	}
	if !found {
		session.ID = ""
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session and writes the cookie. MaxAge < 0 deletes the
// server state and expires the cookie.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.delete(ctx, session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newID()
	}
	if err := s.save(ctx, session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Regenerate drops the server state behind session's current id. The next
// Save issues a new id; values already in session are kept.
func (s *RedisStore) Regenerate(ctx context.Context, session *sessions.Session) error {
	if session.ID != "" {
		if err := s.delete(ctx, session.ID); err != nil {
			return err
		}
	}
	session.ID = ""
	session.IsNew = true
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, s.key(session.ID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}

	values := make(map[interface{}]interface{})
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		// unreadable state is treated like an unknown id
		return false, nil
	}
	session.Values = values
	return true, nil
}

func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), buf.Bytes(), s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func newID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
