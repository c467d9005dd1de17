package terminal

// Icons for terminal output
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconRocket  = "🚀"
	IconBox     = "📦"
	IconWatch   = "👀"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconArrow   = "→"
)
