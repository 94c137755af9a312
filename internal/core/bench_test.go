package core

import "testing"

func benchmarkRoster(b *testing.B, members int) {
	reg := NewRegistry()
	id, err := reg.Create(uint64(members), member(0, "creator"))
	if err != nil {
		b.Fatalf("create: %v", err)
	}
	room, _ := reg.Get(id)
	for i := 1; i < members; i++ {
		_ = room.AddMember(member(uint64(i), "member"))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r, ok := reg.Get(id)
			if !ok {
				b.Fatal("room missing")
			}
			_ = r.Roster()
		}
	})
}

func BenchmarkRoster_10(b *testing.B)  { benchmarkRoster(b, 10) }
func BenchmarkRoster_100(b *testing.B) { benchmarkRoster(b, 100) }
func BenchmarkRoster_500(b *testing.B) { benchmarkRoster(b, 500) }

func BenchmarkRegistryCreate(b *testing.B) {
	reg := NewRegistry()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := reg.Create(1, member(uint64(i), "n")); err != nil {
			b.Fatalf("create: %v", err)
		}
	}
}
