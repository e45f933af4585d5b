package styles

// DarkTheme is used while the resolved theme is dark.
var DarkTheme = Theme{
	Name: "dark",
	Tokens: ThemeTokens{
		Background: "#0B0F14",
		Panel:      "#121821",
		Text:       "#E6EDF3",
		TextMuted:  "#8B9AAE",
		Border:     "#223043",
		Accent:     "#5B8DEF",
		Focus:      "#7AA2F7",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Info:       "#58A6FF",
	},
}
