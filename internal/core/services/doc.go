// Package services implements the driving port interfaces.
// Services contain the crawl orchestration logic and coordinate
// calls to driven ports (adapters): the resource API, the document
// store, the vector index and the webhook service.
package services
