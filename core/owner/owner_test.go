package owner

import "testing"

func TestOwnerPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		id    Identity
		want  Owner
		zero  bool
		merge bool
	}{
		{
			name:  "host wins over guest",
			id:    Identity{HostID: "h1", GuestID: "g1"},
			want:  Owner{HostID: "h1"},
			merge: true,
		},
		{
			name: "host only",
			id:   Identity{HostID: "h1"},
			want: Owner{HostID: "h1"},
		},
		{
			name: "guest only",
			id:   Identity{GuestID: "g1"},
			want: Owner{GuestID: "g1"},
		},
		{
			name: "unresolved",
			id:   Identity{},
			want: Owner{},
			zero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.id.Owner()
			if got != tt.want {
				t.Fatalf("Owner() = %+v, want %+v", got, tt.want)
			}
			if got.HostID != "" && got.GuestID != "" {
				t.Fatal("owner must never carry both identities")
			}
			if tt.id.Zero() != tt.zero {
				t.Fatalf("Zero() = %v, want %v", tt.id.Zero(), tt.zero)
			}
			if tt.id.NeedsMerge() != tt.merge {
				t.Fatalf("NeedsMerge() = %v, want %v", tt.id.NeedsMerge(), tt.merge)
			}
		})
	}
}
