package shared

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"todoapp/shared/cache"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/timezone"

	"github.com/cespare/xxhash/v2"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator = ":"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// Actor returns the user id stored on the context, or the guest marker when
// the request is anonymous.
func Actor(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != "" {
		return user
	}

	return constant.ContextGuest
}

// WithActor stores the acting user on the context.
func WithActor(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, constant.ContextKeyUserID, user)
}

// TransformFields converts the non-zero fields of a struct into a column map
// for a partial update. Pointer fields are dereferenced so drivers receive
// plain values.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	if val.Kind() == reflect.Pointer {
		val = val.Elem()
		typ = typ.Elem()
	}

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	return Audit(updatedFields, username)
}

// Audit stamps the modification metadata onto an update column map.
func Audit(fields map[string]any, username string) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = username

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Condition{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix and parts with the cache key separator.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for a list query. The query
// params and the rendered filter are hashed so keys stay short.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to encode cache query")

		return BuildCacheKey(prefix, where)
	}

	return BuildCacheKey(prefix, strconv.FormatUint(xxhash.Sum64(payload), 16))
}

// InvalidateCaches removes every key under prefix. Failures are logged only,
// a stale cache entry expires on its own.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	pattern := BuildCacheKey(prefix, constant.Asterix)

	if err := redisCache.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// UniqueViolation reports the constraint name when err comes from a unique
// index rejecting a write.
func UniqueViolation(err error) (string, bool) {
	return violation(err, constant.PqErrorCodeUniqueViolation)
}

// CheckViolation reports the constraint name when err comes from a CHECK
// constraint rejecting a write.
func CheckViolation(err error) (string, bool) {
	return violation(err, constant.PqErrorCodeCheckViolation)
}

func violation(err error, code string) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != code {
		return "", false
	}

	return pqErr.Constraint, true
}
