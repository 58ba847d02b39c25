package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog/log"

    "github.com/iliyamo/animal-shelter/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 {
        cw.buf.Write(b)
    } else if remain := cw.limit - cw.size; remain > 0 {
        if int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom builds prefix:tag:sha1(path, query[, user]).  The tag
// groups entries so a write can drop them all at once.  The concrete
// URL path is used, not the route template, so /animals/1 and
// /animals/2 get separate entries.
func cacheKeyFrom(cfg config.CacheConfig, tag string, c echo.Context) string {
    r := c.Request()
    parts := []string{"path", r.URL.Path, "q", r.URL.RawQuery}
    if strings.EqualFold(cfg.KeyStrategy, "route_query_user") {
        parts = append(parts, "user", userID(c))
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%s:%x", cfg.Prefix, tag, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    hdr := make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, hdr, bs[8+hlen:], true
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// NewRedisCache caches successful responses of the configured methods
// under tag.  Headers and body are stored so a hit is byte-identical to
// the original.  Without Redis it does nothing.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, tag string) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cacheKeyFrom(cfg, tag, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        // Content-Length is recomputed; request id belongs to this request
                        if strings.EqualFold(k, "Content-Length") || strings.EqualFold(k, HeaderRequestID) {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    _, _ = c.Response().Write(body)
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            // truncated bodies are not stored
            if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
                return nil
            }
            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
            if err != nil {
                return nil
            }
            if err := rdb.SetEx(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
                log.Debug().Err(err).Str("key", key).Msg("cache: store failed")
            }
            return nil
        }
    }
}

// InvalidateOnWrite drops every entry under tag after a successful
// non-GET request, so writes are visible to the next read.
func InvalidateOnWrite(cfg config.CacheConfig, rdb *redis.Client, tag string) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            err := next(c)
            m := c.Request().Method
            if err != nil || m == http.MethodGet || m == http.MethodHead {
                return err
            }
            if st := c.Response().Status; st >= 200 && st < 300 {
                if n, ierr := Invalidate(context.WithoutCancel(c.Request().Context()), rdb, cfg.Prefix, tag); ierr != nil {
                    log.Warn().Err(ierr).Str("tag", tag).Msg("cache: invalidation failed")
                } else {
                    log.Debug().Int("keys", n).Str("tag", tag).Msg("cache: invalidated")
                }
            }
            return nil
        }
    }
}

// Invalidate deletes all keys under prefix:tag: and returns how many
// were removed.
func Invalidate(ctx context.Context, rdb *redis.Client, prefix, tag string) (int, error) {
    var (
        cursor  uint64
        removed int
    )
    pattern := prefix + ":" + tag + ":*"
    for {
        keys, next, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
        if err != nil {
            return removed, err
        }
        if len(keys) > 0 {
            n, err := rdb.Del(ctx, keys...).Result()
            if err != nil {
                return removed, err
            }
            removed += int(n)
        }
        if next == 0 {
            return removed, nil
        }
        cursor = next
    }
}
