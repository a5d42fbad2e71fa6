//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MediaType represents the kind of media content
// ENUM(image,gif,video,file)
type MediaType string
