package health

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/stats"
)

type WaterCmd struct {
	Add   WaterAddCmd   `cmd:"" help:"Log water you drank."`
	Set   WaterSetCmd   `cmd:"" help:"Overwrite today's intake."`
	Show  WaterShowCmd  `cmd:"" help:"Show today's intake and the last 7 days." default:"1"`
	Limit WaterLimitCmd `cmd:"" help:"Set the daily water limit."`
}

type WaterAddCmd struct {
	ML int `arg:"" optional:"" help:"Millilitres; defaults to one glass."`
}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	ml := c.ML
	if ml == 0 {
		ml = constants.DefaultGlassML
	}
	total, err := ctx.Prefs.AddWaterIntake(ml)
	if err != nil {
		return err
	}

	limit := ctx.Prefs.DailyWaterLimit()
	fmt.Printf("💧 +%d ml, %d/%d ml today\n", ml, total, limit)
	if total >= limit {
		fmt.Println("✓ Daily water goal reached!")
	}
	return nil
}

type WaterSetCmd struct {
	ML int `arg:"" help:"Today's total in millilitres."`
}

func (c *WaterSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.SetWaterIntakeToday(c.ML); err != nil {
		return err
	}
	fmt.Printf("💧 Today's intake set to %d ml\n", c.ML)
	return nil
}

type WaterLimitCmd struct {
	ML int `arg:"" help:"Daily limit in millilitres."`
}

func (c *WaterLimitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.SetDailyWaterLimit(c.ML); err != nil {
		return err
	}
	fmt.Printf("✓ Daily water limit set to %d ml\n", c.ML)
	return nil
}

type WaterShowCmd struct{}

func (c *WaterShowCmd) Run(ctx *cli.Context) error {
	intake, limit := ctx.Prefs.WaterIntakeToday(), ctx.Prefs.DailyWaterLimit()
	series := ctx.Prefs.WaterIntakeForLast7Days()

	fmt.Println(cli.TitleStyle.Render("💧 Hydration"))
	fmt.Printf("Today: %d/%d ml %s\n\n", intake, limit, cli.Bar(ratio(intake, limit), 20))
	fmt.Println(seriesTable(series, limit, "ml"))
	fmt.Printf("Weekly average: %.0f ml\n", stats.WeeklyAverage(series))
	return nil
}

type StepsCmd struct {
	Set  StepsSetCmd  `cmd:"" help:"Record today's step count."`
	Show StepsShowCmd `cmd:"" help:"Show today's steps and the last 7 days." default:"1"`
	Goal StepsGoalCmd `cmd:"" help:"Set the daily step goal."`
}

type StepsSetCmd struct {
	Steps int `arg:"" help:"Steps taken today."`
}

func (c *StepsSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.SaveStepCount(c.Steps); err != nil {
		return err
	}
	goal := ctx.Prefs.StepGoal()
	fmt.Printf("👟 %d/%d steps today\n", c.Steps, goal)
	if c.Steps >= goal {
		fmt.Println("✓ Step goal reached!")
	}
	return nil
}

type StepsGoalCmd struct {
	Steps int `arg:"" help:"Daily step goal."`
}

func (c *StepsGoalCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.SetStepGoal(c.Steps); err != nil {
		return err
	}
	fmt.Printf("✓ Daily step goal set to %d\n", c.Steps)
	return nil
}

type StepsShowCmd struct{}

func (c *StepsShowCmd) Run(ctx *cli.Context) error {
	steps, goal := ctx.Prefs.StepCountToday(), ctx.Prefs.StepGoal()
	series := ctx.Prefs.StepCountForLast7Days()

	fmt.Println(cli.TitleStyle.Render("👟 Steps"))
	fmt.Printf("Today: %d/%d %s\n\n", steps, goal, cli.Bar(ratio(steps, goal), 20))
	fmt.Println(seriesTable(series, goal, "steps"))
	fmt.Printf("Total this week: %d\n", stats.Total(series))
	return nil
}

// ratio is value as a percentage of target; 0 when there is no target.
func ratio(value, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(value) / float64(target) * 100
}

func seriesTable(series []models.DayValue, target int, unit string) string {
	rows := make([][]string, 0, len(series))
	for _, d := range series {
		rows = append(rows, []string{d.Date, strconv.Itoa(d.Value) + " " + unit, cli.Bar(ratio(d.Value, target), 14)})
	}
	return cli.Table([]string{"Date", "Total", "Goal"}, rows)
}
