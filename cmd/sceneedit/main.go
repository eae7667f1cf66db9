// Command sceneedit opens an empty scene in the editor window.
package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/plus3/scenedit/editor"
	"github.com/plus3/scenedit/editor/ui"
	uiebiten "github.com/plus3/scenedit/editor/ui/ebiten"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "sceneedit",
		Short:         "Edit a scene with undo and redo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := editor.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger := editor.NewLogger(cfg, os.Stderr)

			sess := editor.NewSession(cfg, logger)
			defer sess.Shutdown()

			backend := uiebiten.NewImguiBackend(sess.Title(), cfg.WindowWidth, cfg.WindowHeight)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			game := uiebiten.NewGame(sess, ui.NewPanels(sess), backend)
			logger.Info().Str("scene", sess.Scene().Name()).Msg("editor started")
			if err := ebiten.RunGame(game); err != nil {
				logger.Error().Err(err).Msg("editor stopped")
				return eris.Wrap(err, "run editor")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "KEY=VALUE config file; SCENEDIT_* environment variables override it")
	return cmd
}
