// Package main provides pokedex-probe, a health probe for the ops port
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/pokedex-web/internal/handlers/ops"
)

var (
	serverAddr string
	timeout    time.Duration
	service    string
)

var rootCmd = &cobra.Command{
	Use:   "pokedex-probe",
	Short: "Health probe for the pokedex ops port",
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a health service once; exits non-zero unless SERVING",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("Failed to close connection: %v", err)
			}
		}()

		resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
			Service: service,
		})
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		fmt.Println(resp.Status.String())
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			return fmt.Errorf("service %q is %s", service, resp.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC ops address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	checkCmd.Flags().StringVar(&service, "service", ops.GatewayService, "health service name (empty for overall)")

	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
