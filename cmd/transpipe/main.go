package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"transpipe/internal/config"
	"transpipe/internal/model"
	"transpipe/internal/queue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "transpipe: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transpipe",
		Short: "Translation queue development CLI",
		Long: `transpipe pokes at the translation queue during development: enqueue test
jobs, watch the results channel, and inspect queue depths.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newEnqueueCmd(),
		newWatchCmd(),
		newStatsCmd(),
		newRequeueCmd(),
	)
	return cmd
}

func openSource() (*queue.Source, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return queue.Open(queue.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Queue:    cfg.Queue,
		Channel:  cfg.ResultsChannel,
	}), nil
}

func newEnqueueCmd() *cobra.Command {
	var text string
	var langs []string
	var count int
	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Push test jobs onto the wait list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			for i := 0; i < count; i++ {
				job := &model.Job{
					ID:              uuid.NewString(),
					Text:            text,
					TargetLanguages: langs,
					CreatedAt:       time.Now().UnixMilli(),
				}
				if err := src.Enqueue(ctx, job); err != nil {
					return err
				}
				fmt.Printf("enqueued %s\n", job.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "안녕하세요 오늘 날씨가 좋네요", "Text to translate")
	cmd.Flags().StringSliceVarP(&langs, "langs", "l", []string{"en"}, "Target language codes")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of jobs to enqueue")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print events from the results channel until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			sub := src.Subscribe(ctx)
			defer sub.Close()
			ch := sub.Channel()
			for {
				select {
				case <-ctx.Done():
					return nil
				case msg, ok := <-ch:
					if !ok {
						return nil
					}
					fmt.Println(msg.Payload)
				}
			}
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show wait and active list depths",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			wait, active, err := src.Depths(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("wait=%d active=%d\n", wait, active)
			return nil
		},
	}
}

func newRequeueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requeue",
		Short: "Move leaked active entries back onto the wait list",
		Long: `Claims left on the active list by crashed workers never resolve on their
own. requeue moves every active entry back to wait so a live worker picks it
up again. Only run this while no worker holds an in-flight job.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			moved, err := src.RequeueActive(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("requeued %d jobs\n", moved)
			return nil
		},
	}
}
