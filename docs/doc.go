// Package docs provides generated OpenAPI documentation.
//
// Chapterize API
//
//	@title			Chapterize API
//	@version		1.0
//	@description	Split PDFs into per-chapter files using their outline.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/mjhall/chapterize
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/chapterize/serve.go -o ./swagger --parseDependency --parseInternal
