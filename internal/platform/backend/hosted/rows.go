package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"storefront_backend/internal/platform/backend"
)

const singleObject = "application/vnd.pgrst.object+json"

// Rows implements backend.RowStore over the /rest/v1 API.
type Rows struct {
	t *transport
}

var _ backend.RowStore = (*Rows)(nil)

// queryValues renders filters as col=eq.value and ordering as order=col.dir.
func queryValues(q backend.Query) url.Values {
	v := url.Values{}
	for _, f := range q.Filters {
		v.Add(f.Column, "eq."+fmt.Sprint(f.Value))
	}
	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		v.Set("order", q.Order.Column+"."+dir)
	}
	return v
}

func tablePath(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

// singleNotFound maps the "0 rows for a single object" answer onto ErrNoRows.
func singleNotFound(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotAcceptable || apiErr.Code == "PGRST116") {
		return backend.ErrNoRows
	}
	return err
}

func (r *Rows) Select(ctx context.Context, q backend.Query, dest any) error {
	v := queryValues(q)
	v.Set("select", "*")
	res, err := r.t.do(ctx, request{method: http.MethodGet, path: tablePath(q.Table), query: v})
	if err != nil {
		return err
	}
	return decode(res, dest)
}

func (r *Rows) Single(ctx context.Context, q backend.Query, dest any) error {
	v := queryValues(q)
	v.Set("select", "*")
	res, err := r.t.do(ctx, request{
		method:  http.MethodGet,
		path:    tablePath(q.Table),
		query:   v,
		headers: map[string]string{"Accept": singleObject},
	})
	if err != nil {
		return singleNotFound(err)
	}
	return decode(res, dest)
}

func writeHeaders(dest any) map[string]string {
	h := map[string]string{"Content-Type": "application/json", "Prefer": "return=minimal"}
	if dest != nil {
		h["Prefer"] = "return=representation"
		h["Accept"] = singleObject
	}
	return h
}

func (r *Rows) Insert(ctx context.Context, table string, row any, dest any) error {
	body, err := jsonBody(row)
	if err != nil {
		return err
	}
	res, err := r.t.do(ctx, request{
		method:  http.MethodPost,
		path:    tablePath(table),
		body:    body,
		headers: writeHeaders(dest),
	})
	if err != nil {
		return err
	}
	return decode(res, dest)
}

func (r *Rows) Update(ctx context.Context, q backend.Query, patch map[string]any, dest any) error {
	body, err := jsonBody(patch)
	if err != nil {
		return err
	}
	res, err := r.t.do(ctx, request{
		method:  http.MethodPatch,
		path:    tablePath(q.Table),
		query:   queryValues(q),
		body:    body,
		headers: writeHeaders(dest),
	})
	if err != nil {
		if dest != nil {
			return singleNotFound(err)
		}
		return err
	}
	return decode(res, dest)
}

func (r *Rows) Delete(ctx context.Context, q backend.Query) error {
	if len(q.Filters) == 0 {
		return backend.ErrUnfilteredDelete
	}
	res, err := r.t.do(ctx, request{
		method:  http.MethodDelete,
		path:    tablePath(q.Table),
		query:   queryValues(q),
		headers: map[string]string{"Prefer": "return=minimal"},
	})
	if err != nil {
		return err
	}
	return decode(res, nil)
}
