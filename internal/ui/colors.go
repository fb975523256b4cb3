package ui

// The Color* accessors resolve against the active theme on every call,
// so output produced after InitTheme or SetTheme picks up the change.

// ColorReset returns the escape code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the theme's error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the theme's success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the theme's warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the theme's primary accent color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the theme's info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the theme's secondary color.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
