// Package docs provides generated OpenAPI documentation.
//
// Fintab API
//
//	@title			Fintab API
//	@version		1.0
//	@description	Financial table extraction API for pulling structured tables out of PDF documents.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/fintab/fintab
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/fintab/serve.go -o . --parseDependency --parseInternal
