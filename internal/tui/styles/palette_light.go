package styles

// LightTheme is used while the resolved theme is light.
var LightTheme = Theme{
	Name: "light",
	Tokens: ThemeTokens{
		Background: "#FFFFFF",
		Panel:      "#F6F8FA",
		Text:       "#1F2328",
		TextMuted:  "#59636E",
		Border:     "#D1D9E0",
		Accent:     "#0969DA",
		Focus:      "#8250DF",
		Success:    "#1A7F37",
		Warning:    "#9A6700",
		Info:       "#0550AE",
	},
}
