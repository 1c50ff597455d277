// Package prometheus exposes pipeline metrics through a
// prometheus/client_golang Collector.
//
// The collector reads a fresh snapshot on every scrape, so it carries no
// state of its own and one collector can be registered per pipeline.
package prometheus
