package session

import "testing"

func TestNewGeneratesDistinctIDs(t *testing.T) {
	a := New("first")
	b := New("second")
	if a.ID == "" || b.ID == "" {
		t.Fatalf("会话应自动生成 ID")
	}
	if a.ID == b.ID {
		t.Fatalf("两个会话的 ID 不应相同")
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("会话应带创建时间")
	}
}

func TestAppendMessage(t *testing.T) {
	s := New("demo")
	msg := s.Append(RoleUser, "hello")
	if len(s.Messages) != 1 {
		t.Fatalf("追加后应有 1 条消息，实际 %d", len(s.Messages))
	}
	if msg.ID == "" || msg.Role != RoleUser || msg.Content != "hello" {
		t.Fatalf("消息字段不符: %+v", msg)
	}
}

func TestRoleDisplayName(t *testing.T) {
	cases := map[Role]string{
		RoleUser:      "You",
		RoleAssistant: "Assistant",
		RoleSystem:    "System",
		RoleTool:      "Tool",
		Role("judge"): "judge",
	}
	for role, want := range cases {
		if got := role.DisplayName(); got != want {
			t.Fatalf("角色 %q 展示名期望 %q，实际 %q", role, want, got)
		}
	}
}
