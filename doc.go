// Package binser writes typed values into a byte region and reads them back
// in the same order. Values are copied as their raw in-memory representation
// (native byte order and width), so a payload is only readable on a platform
// with the same layout.
//
// Components:
//   - Storage: the byte region. Fixed has a constant capacity and rejects
//     appends that do not fit; Growable doubles its region as needed.
//   - Serializer: the typed surface over a Storage (Write, Read, WriteString...).
//   - Coder[T]: composable encoders for slices, maps, sets, stacks, queues,
//     priority queues, deques, fixed-layout structs (Pod) and codec payloads.
//   - Registry: per-type write/read callbacks for user types.
//   - Snapshots: payload persistence into a provider (Redis, SQLite, ...).
//
// Encoding:
//
//	scalar     - unsafe.Sizeof(T) raw bytes
//	container  - count(u64) | elements...
//	string     - count(u64) | bytes
//	file frame - size(u64) | payload
//
// Reads must repeat the writes' types and order; nothing in the payload
// says what it holds.
//
//	s := binser.New(binser.NewGrowable(binser.GrowableOptions{}))
//	_ = binser.Write(s, int32(-100))
//	_ = binser.WriteString(s, "hello")
//
//	var n int32
//	var str string
//	_ = binser.Read(s, &n)
//	_ = binser.ReadString(s, &str)
package binser
