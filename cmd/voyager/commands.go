package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"voyager/internal/ai"
	"voyager/internal/export"
	"voyager/internal/logger"
	"voyager/internal/modules/travel"
)

// withPlanner builds the orchestrator from the viper settings and hands it to fn.
func withPlanner(cmd *cobra.Command, fn func(*travel.Service) error) error {
	lg, err := logger.NewStderr(viper.GetString("log.level"), zap.String("service", "voyager-cli"))
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	gen, closeGen, err := ai.New(cmd.Context(), ai.Settings{
		Provider:    viper.GetString("ai.provider"),
		OpenAIKey:   viper.GetString("ai.openai_key"),
		OpenAIModel: viper.GetString("ai.openai_model"),
		GeminiKey:   viper.GetString("ai.gemini_key"),
		GeminiModel: viper.GetString("ai.gemini_model"),
		FixtureDir:  viper.GetString("ai.fixture_dir"),
	})
	if err != nil {
		return err
	}
	defer closeGen()
	return fn(travel.NewService(gen, lg))
}

func newGenerateCmd() *cobra.Command {
	var prefsPath, out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an itinerary from a preferences file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefs travel.TravelPreferences
			if err := readDocument(prefsPath, &prefs); err != nil {
				return err
			}
			return withPlanner(cmd, func(svc *travel.Service) error {
				it, err := svc.GenerateItinerary(cmd.Context(), prefs)
				if err != nil {
					return err
				}
				return emit(cmd, out, it)
			})
		},
	}
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "travel preferences (.json, .yaml)")
	cmd.Flags().StringVar(&out, "out", "", "write the itinerary here instead of stdout")
	_ = cmd.MarkFlagRequired("prefs")
	return cmd
}

func newReviseCmd() *cobra.Command {
	var itPath, fbPath, out string
	cmd := &cobra.Command{
		Use:   "revise",
		Short: "Revise an itinerary with feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			var it travel.TravelItinerary
			var fb travel.ItineraryFeedback
			if err := readDocument(itPath, &it); err != nil {
				return err
			}
			if err := readDocument(fbPath, &fb); err != nil {
				return err
			}
			return withPlanner(cmd, func(svc *travel.Service) error {
				revised, err := svc.ReviseItinerary(cmd.Context(), it, fb)
				if err != nil {
					return err
				}
				return emit(cmd, out, revised)
			})
		},
	}
	cmd.Flags().StringVar(&itPath, "itinerary", "", "current itinerary (.json, .yaml)")
	cmd.Flags().StringVar(&fbPath, "feedback", "", "feedback (.json, .yaml)")
	cmd.Flags().StringVar(&out, "out", "", "write the revised itinerary here instead of stdout")
	_ = cmd.MarkFlagRequired("itinerary")
	_ = cmd.MarkFlagRequired("feedback")
	return cmd
}

func newBookCmd() *cobra.Command {
	var itPath, prefsPath, out string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Simulate flight and hotel bookings for an itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var it travel.TravelItinerary
			if err := readDocument(itPath, &it); err != nil {
				return err
			}
			var prefs *travel.TravelPreferences
			if prefsPath != "" {
				prefs = new(travel.TravelPreferences)
				if err := readDocument(prefsPath, prefs); err != nil {
					return err
				}
			}
			return withPlanner(cmd, func(svc *travel.Service) error {
				sim, err := svc.SimulateBookings(cmd.Context(), it, prefs)
				if err != nil {
					return err
				}
				return emit(cmd, out, travel.BookingResponse{Bookings: *sim})
			})
		},
	}
	cmd.Flags().StringVar(&itPath, "itinerary", "", "itinerary (.json, .yaml)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "optional travel preferences for flight and hotel choices")
	cmd.Flags().StringVar(&out, "out", "", "write the booking response here instead of stdout")
	_ = cmd.MarkFlagRequired("itinerary")
	return cmd
}

func newExportCmd() *cobra.Command {
	var itPath, bookingsPath, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render an itinerary and its bookings as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			var it travel.TravelItinerary
			if err := readDocument(itPath, &it); err != nil {
				return err
			}
			bookings, err := readBookings(bookingsPath)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := export.RenderItineraryPDF(&buf, it, bookings); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, export.Filename(it))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&itPath, "itinerary", "", "itinerary (.json, .yaml)")
	cmd.Flags().StringVar(&bookingsPath, "bookings", "", "booking response (.json, .yaml)")
	cmd.Flags().StringVar(&dir, "out", ".", "output directory")
	_ = cmd.MarkFlagRequired("itinerary")
	_ = cmd.MarkFlagRequired("bookings")
	return cmd
}
