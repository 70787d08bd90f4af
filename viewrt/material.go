package viewrt

// Texture is a host texture handle.
type Texture = any

// Material is a host material addressed by shader property name.
// Generated material views wrap it with typed accessors.
type Material interface {
	Integer(name string) int32
	SetInteger(name string, v int32)
	Float(name string) float32
	SetFloat(name string, v float32)
	Color(name string) Color
	SetColor(name string, v Color)
	Vector(name string) Vector4
	SetVector(name string, v Vector4)

	Texture(name string) Texture
	SetTexture(name string, v Texture)
	HasTexture(name string) bool
	TextureOffset(name string) Vector2
	SetTextureOffset(name string, v Vector2)
	TextureScale(name string) Vector2
	SetTextureScale(name string, v Vector2)
}
