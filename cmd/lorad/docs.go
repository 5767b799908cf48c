package main

// General API documentation for swaggo. Run `swag init` with -tags=swagger builds.
//
// @title           lorad API
// @version         1.0
// @description     HTTP API for LoRA adapter loading and registry management.
//
// @contact.name   lorad maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
