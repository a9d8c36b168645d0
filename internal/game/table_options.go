package game

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

// tableConfig holds all configuration for creating a table.
type tableConfig struct {
	smallBlind     int
	bigBlind       int
	minRaise       int // Default: big blind
	startingChips  int
	chipCounts     []int // If set, overrides startingChips per seat
	difficulty     Difficulty
	smallBlindSeat int
	names          [2]string
	policy         Policy
}

func defaultTableConfig() tableConfig {
	return tableConfig{
		smallBlind:     5,
		bigBlind:       10,
		startingChips:  1000,
		difficulty:     Medium,
		smallBlindSeat: HumanSeat,
		names:          [2]string{"Player", "Bot"},
	}
}

// WithBlinds sets the small and big blind amounts.
//
// Example:
//
//	t, err := NewTable(id, WithBlinds(5, 10))
func WithBlinds(small, big int) TableOption {
	return func(c *tableConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithMinRaise sets the raise increment used when a raise has no explicit size.
func WithMinRaise(amount int) TableOption {
	return func(c *tableConfig) {
		c.minRaise = amount
	}
}

// WithStartingChips gives both seats the same stack.
func WithStartingChips(chips int) TableOption {
	return func(c *tableConfig) {
		c.startingChips = chips
		c.chipCounts = nil
	}
}

// WithChips sets individual stacks for the human and bot seats.
//
// Example:
//
//	t, err := NewTable(id, WithChips(1000, 250))
func WithChips(human, bot int) TableOption {
	return func(c *tableConfig) {
		c.chipCounts = []int{human, bot}
	}
}

// WithDifficulty sets the bot difficulty.
func WithDifficulty(d Difficulty) TableOption {
	return func(c *tableConfig) {
		c.difficulty = d
	}
}

// WithSmallBlindSeat chooses which seat posts the small blind.
func WithSmallBlindSeat(seat int) TableOption {
	return func(c *tableConfig) {
		c.smallBlindSeat = seat
	}
}

// WithNames sets the display names of the human and bot seats.
func WithNames(human, bot string) TableOption {
	return func(c *tableConfig) {
		c.names = [2]string{human, bot}
	}
}

// WithPolicy attaches the policy that drives the bot seat.
func WithPolicy(p Policy) TableOption {
	return func(c *tableConfig) {
		c.policy = p
	}
}
