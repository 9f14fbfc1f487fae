package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SelectionTTL 画面选择状态保存 7 天
const SelectionTTL = 7 * 24 * time.Hour

// Selection 客户端最后一次选择的单元 / 入居者 / 日期 / 记录者
// 只是便利缓存，服务端逻辑从不读取它
type Selection struct {
	UnitID     int64  `json:"unit_id,omitempty"`
	ResidentID int64  `json:"resident_id,omitempty"`
	Date       string `json:"date,omitempty"`
	StaffName  string `json:"staff_name,omitempty"`
}

type SelectionStore struct {
	kv KV
}

func NewSelectionStore(kv KV) *SelectionStore {
	return &SelectionStore{kv: kv}
}

func selectionKey(clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		clientID = "anonymous"
	}
	return "kaigo:selection:client:" + clientID
}

func (s *SelectionStore) Save(ctx context.Context, clientID string, sel Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, selectionKey(clientID), string(raw), SelectionTTL); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// Load 没有保存过时返回零值
func (s *SelectionStore) Load(ctx context.Context, clientID string) (Selection, error) {
	raw, err := s.kv.Get(ctx, selectionKey(clientID))
	if errors.Is(err, ErrMiss) {
		return Selection{}, nil
	}
	if err != nil {
		return Selection{}, fmt.Errorf("failed to load selection: %w", err)
	}
	var sel Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		// 旧格式 / 损坏的缓存当作未保存
		return Selection{}, nil
	}
	return sel, nil
}
