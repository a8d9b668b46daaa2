package telegram

import (
	"fmt"
	"strings"

	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/selector"
)

var slotTitles = map[selector.Slot]string{
	selector.Breakfast: "🌅 *Breakfast*",
	selector.Lunch:     "☀️ *Lunch*",
	selector.Dinner:    "🌙 *Dinner*",
	selector.Snack:     "🍎 *Snack*",
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func formatPlanMarkdown(plan planner.DailyPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Daily Meal Plan* (%s risk, %s)\n\n", plan.RiskLevel, escapeMarkdown(plan.DietType)))

	for _, slot := range selector.Slots {
		sb.WriteString(slotTitles[slot])
		sb.WriteString("\n")
		items := plan.Meals[slot]
		if len(items) == 0 {
			sb.WriteString("_No suitable food_\n")
		}
		for _, item := range items {
			sb.WriteString(formatItem(item))
		}
		sb.WriteString("\n")
	}

	n := plan.Nutrition
	sb.WriteString(fmt.Sprintf("📊 *Total:* %d kcal • %.1fg protein • %.1fg fiber • avg GI %.1f\n", n.Calories, n.Protein, n.Fiber, n.AvgGI))

	if plan.Advice != "" {
		sb.WriteString("\n💡 *Advice*\n")
		sb.WriteString(escapeMarkdown(plan.Advice))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRecommendationsMarkdown(recs []planner.FoodRecord) string {
	if len(recs) == 0 {
		return "_No foods match this diet._"
	}
	var sb strings.Builder
	sb.WriteString("⭐ *Recommended Foods*\n\n")
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("%d. ", i+1))
		sb.WriteString(strings.TrimPrefix(formatItem(rec), "• "))
	}
	return sb.String()
}

func formatItem(item planner.FoodRecord) string {
	return fmt.Sprintf("• %s %s (%d kcal, GI %d, %s)\n", item.Icon, escapeMarkdown(item.Title), item.Calories, item.GIIndex, item.Weight)
}

func formatMetricsMarkdown(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d requests, %d advice tokens\n", d.Date, d.Requests, d.TotalPrompt+d.TotalCompletion))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	return sb.String()
}
