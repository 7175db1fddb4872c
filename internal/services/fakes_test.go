package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/yoockh/mentorship/internal/cache"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/utils"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		delete(c.data, key)
		return false, fmt.Errorf("%w: %s: %v", cache.ErrCorruptEntry, key, err)
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type memProfiles struct {
	mu    sync.Mutex
	byID  map[string]models.UserProfile
	reads int
	err   error
}

func newMemProfiles() *memProfiles { return &memProfiles{byID: make(map[string]models.UserProfile)} }

func (r *memProfiles) GetByUserID(_ context.Context, userID string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &p, nil
}

func (r *memProfiles) Upsert(_ context.Context, p *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.byID[p.UserID] = *p
	return nil
}

func (r *memProfiles) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[userID]; !ok {
		return utils.ErrNotFound
	}
	delete(r.byID, userID)
	return nil
}

type memUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	fail    bool
}

func newMemUploader() *memUploader { return &memUploader{objects: make(map[string][]byte)} }

func (u *memUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if u.fail {
		return "", errors.New("bucket unavailable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[objectName] = b
	return "https://storage.example/" + objectName, nil
}

func (u *memUploader) Delete(_ context.Context, objectName string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, objectName)
	u.deleted = append(u.deleted, objectName)
	return nil
}
