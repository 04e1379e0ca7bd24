package game

const (
	// TileSize is the edge length of a single mesh tile in world units.
	TileSize = float32(128)
	// TicksPerSecond is the fixed simulation rate of the loop.
	TicksPerSecond = 50

	Gravity              = float32(-1.0)
	AccelerationFraction = float32(0.1)
	LatchDeadZone        = float32(0.05)
	VelocityEpsilon      = float32(0.01)
	FloorSnapMargin      = float32(0.5)
	BounceThreshold      = float32(4.0)
	ZlerpTolerance       = float32(32)
	GroundedZlerp        = float32(0.25)
	FlyDampen            = float32(0.1)
	MaxDisplacement      = float32(20)

	GroundFriction     = float32(0.1)
	IceFriction        = float32(0.02)
	AirFriction        = float32(0.99)
	WaterFriction      = float32(0.8)
	SlipperyTraction   = float32(0.25)
	HillSlide          = float32(1.0)
	SlideTractionDecay = float32(0.8)

	JumpDelayTicks      = 20
	AttachJumpCooldown  = 20
	PlatformTolerance   = float32(16)
	DefaultCarryWeight  = uint32(200)
	DefaultSafeHistory  = 16
	DefaultIndexBuckets = 1024
	DefaultIndexPool    = 4096
	DefaultGridCellCap  = 64
)
