package store

import "context"

// NullStore is the offline gateway: every call succeeds and performs no I/O.
// Selected whenever no real credentials are configured (demo mode).
type NullStore struct{}

func NewNullStore() *NullStore { return &NullStore{} }

func (*NullStore) Name() string { return "null" }

func (*NullStore) SelectAll(ctx context.Context, table string, dest any) error { return nil }

func (*NullStore) Insert(ctx context.Context, table string, row any) error { return nil }

func (*NullStore) Update(ctx context.Context, table string, match map[string]string, patch any) error {
	return nil
}

func (*NullStore) Delete(ctx context.Context, table string, match map[string]string) error {
	return nil
}

func (*NullStore) Upsert(ctx context.Context, table string, row any, onConflict string) error {
	return nil
}

func (*NullStore) Count(ctx context.Context, table string) (int64, error) { return 0, nil }

func (*NullStore) Ping(ctx context.Context) error { return nil }
