package main

import (
	"context"

	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/kafka"
)

// graphDependency gates startup on graph database connectivity
type graphDependency struct {
	client *graph.Client
}

func (d *graphDependency) GetName() string {
	return "graph-db"
}

func (d *graphDependency) DependsOn() []string {
	return nil
}

func (d *graphDependency) Start(ctx context.Context) error {
	return d.client.VerifyConnectivity(ctx)
}

func (d *graphDependency) Stop(ctx context.Context) error {
	return d.client.Close(ctx)
}

// consumerDependency runs the Kafka file-drop consumer
type consumerDependency struct {
	consumer *kafka.Consumer
}

func (d *consumerDependency) GetName() string {
	return "kafka-consumer"
}

func (d *consumerDependency) DependsOn() []string {
	return []string{"graph-db"}
}

func (d *consumerDependency) Start(ctx context.Context) error {
	return d.consumer.Start(ctx)
}

func (d *consumerDependency) Stop(ctx context.Context) error {
	return d.consumer.Stop()
}
