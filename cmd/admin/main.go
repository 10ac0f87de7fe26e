package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-league/internal/app"
	"github.com/riskibarqy/football-league/internal/config"
	"github.com/riskibarqy/football-league/internal/domain/user"
	"github.com/riskibarqy/football-league/internal/platform/logging"
	"github.com/riskibarqy/football-league/internal/usecase"
	"github.com/urfave/cli/v2"
)

const (
	competitionFlag = "competition"
	jsonFlag        = "json"
	subjectFlag     = "subject"
	ttlFlag         = "ttl"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "admin",
		Usage:  "Operate football-league standings from the command line",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "recalculate",
				Usage: "Rebuild one competition's standings from its finished matches",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: competitionFlag, Aliases: []string{"c"}, Required: true},
				},
				Action: withContainer(func(cCtx *cli.Context, c *app.Container) error {
					result, err := c.Standings.Recalculate(cCtx.Context, cCtx.String(competitionFlag))
					if err != nil {
						return err
					}
					fmt.Fprintf(cCtx.App.Writer, "competition=%s teams_updated=%d matches_processed=%d\n",
						result.CompetitionID, result.TeamsUpdated, result.MatchesProcessed)
					return nil
				}),
			},
			{
				Name:  "recalculate-all",
				Usage: "Rebuild standings for every competition",
				Action: withContainer(func(cCtx *cli.Context, c *app.Container) error {
					result, err := c.Standings.RecalculateAll(cCtx.Context)
					if err != nil {
						return err
					}
					printRecalculateAll(cCtx.App.Writer, result)
					if result.FailedCount > 0 {
						return fmt.Errorf("%d competition(s) failed", result.FailedCount)
					}
					return nil
				}),
			},
			{
				Name:  "standings",
				Usage: "Print the ranked table of a competition",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: competitionFlag, Aliases: []string{"c"}, Required: true},
					&cli.BoolFlag{Name: jsonFlag, Usage: "Print JSON instead of a table"},
				},
				Action: withContainer(func(cCtx *cli.Context, c *app.Container) error {
					table, err := c.Standings.GetStandings(cCtx.Context, cCtx.String(competitionFlag))
					if err != nil {
						return err
					}
					if cCtx.Bool(jsonFlag) {
						return sonic.ConfigDefault.NewEncoder(cCtx.App.Writer).Encode(standingsJSON(table))
					}
					return printStandings(cCtx.App.Writer, table)
				}),
			},
			{
				Name:  "token",
				Usage: "Issue an admin bearer token signed with ADMIN_JWT_SECRET",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: subjectFlag, Value: "league-ops"},
					&cli.DurationFlag{Name: ttlFlag, Value: 12 * time.Hour},
				},
				Action: withContainer(func(cCtx *cli.Context, c *app.Container) error {
					token, err := c.Verifier.Issue(cCtx.String(subjectFlag), user.RoleAdmin, cCtx.Duration(ttlFlag))
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, token)
					return nil
				}),
			},
		},
	}
}

func withContainer(fn func(cCtx *cli.Context, c *app.Container) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel, os.Stderr)
		defer func() { _ = logger.Sync() }()

		c, err := app.Build(cCtx.Context, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return fn(cCtx, c)
	}
}

func printRecalculateAll(w io.Writer, result usecase.RecalculateAllResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPETITION\tTEAMS\tMATCHES\tMS\tERROR")
	for _, item := range result.Competitions {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", item.CompetitionID, item.TeamsUpdated, item.MatchesProcessed, item.DurationMs, item.Error)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "success=%d failed=%d\n", result.SuccessCount, result.FailedCount)
}

func printStandings(w io.Writer, table usecase.StandingsTable) error {
	fmt.Fprintf(w, "%s %s (%s)\n", table.Competition.Name, table.Competition.Season, table.Competition.TiebreakPolicy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTEAM\tP\tW\tD\tL\tGF\tGA\tGD\tPTS\t")
	for _, item := range table.Rows {
		s := item.Standing
		name := item.TeamName
		if strings.TrimSpace(name) == "" {
			name = s.TeamID()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
			item.Position, name, s.Played(), s.Won(), s.Drawn(), s.Lost(),
			s.GoalsFor(), s.GoalsAgainst(), s.GoalDifference(), s.Points())
	}
	return tw.Flush()
}

type standingRowJSON struct {
	Position     int    `json:"position"`
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

func standingsJSON(table usecase.StandingsTable) []standingRowJSON {
	out := make([]standingRowJSON, 0, len(table.Rows))
	for _, item := range table.Rows {
		s := item.Standing
		out = append(out, standingRowJSON{
			Position:     item.Position,
			TeamID:       s.TeamID(),
			TeamName:     item.TeamName,
			Played:       s.Played(),
			Won:          s.Won(),
			Drawn:        s.Drawn(),
			Lost:         s.Lost(),
			GoalsFor:     s.GoalsFor(),
			GoalsAgainst: s.GoalsAgainst(),
			Points:       s.Points(),
		})
	}
	return out
}
