package viewrt

// Structured values a store holds whole. They are viewed through Value[T].

// Color is an RGBA color with float components.
type Color struct{ R, G, B, A float32 }

// Vector2 is a 2D vector.
type Vector2 struct{ X, Y float32 }

// Vector2Int is a 2D integer vector.
type Vector2Int struct{ X, Y int32 }

// Vector3 is a 3D vector.
type Vector3 struct{ X, Y, Z float32 }

// Vector3Int is a 3D integer vector.
type Vector3Int struct{ X, Y, Z int32 }

// Vector4 is a 4D vector.
type Vector4 struct{ X, Y, Z, W float32 }

// Quaternion is a rotation.
type Quaternion struct{ X, Y, Z, W float32 }

// Rect is an axis-aligned rectangle.
type Rect struct{ X, Y, Width, Height float32 }

// RectInt is an axis-aligned integer rectangle.
type RectInt struct{ X, Y, Width, Height int32 }

// Bounds is an axis-aligned box.
type Bounds struct{ Center, Extents Vector3 }

// BoundsInt is an axis-aligned integer box.
type BoundsInt struct{ Position, Size Vector3Int }

// Hash128 is a 128-bit hash.
type Hash128 struct{ Hi, Lo uint64 }
