package testutils

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"yatube/internal/pkg/kafka"
	"yatube/internal/pkg/minio"
)

// MemoryObjectStore 内存版 minio.ObjectStore
type MemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	// FailPut 为 true 时 PutObject 返回错误
	FailPut bool
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryObjectStore) PutObject(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut {
		return errors.New("object store unavailable")
	}
	s.objects[key] = memoryObject{data: data, contentType: contentType, lastModified: time.Now()}
	return nil
}

func (s *MemoryObjectStore) RemoveObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryObjectStore) ListObjects(_ context.Context, prefix string) ([]minio.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	objects := make([]minio.ObjectInfo, 0)
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, minio.ObjectInfo{Key: key, LastModified: obj.lastModified})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (s *MemoryObjectStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "http://media.test/yatube/" + key
}

// Has 对象是否存在
func (s *MemoryObjectStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Age 把对象的修改时间往前拨
func (s *MemoryObjectStore) Age(key string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.objects[key]; ok {
		obj.lastModified = obj.lastModified.Add(-d)
		s.objects[key] = obj
	}
}

// RecordingPublisher 记录所有发布的事件
type RecordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, event *kafka.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func (p *RecordingPublisher) Events() []kafka.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kafka.Event(nil), p.events...)
}
