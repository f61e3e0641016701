package traits

// State field names used by the traits in this package.
const (
	FieldOpened = "opened"

	FieldEffect        = "effect"
	FieldEffectPhase   = "effectPhase"
	FieldEnableEffects = "enableEffects"

	FieldItems             = "items"
	FieldSelectedIndex     = "selectedIndex"
	FieldSelectionRequired = "selectionRequired"
	FieldSelectionWraps    = "selectionWraps"

	FieldSwipeItem                = "swipeItem"
	FieldSwipeFraction            = "swipeFraction"
	FieldSwiping                  = "swiping"
	FieldSwipeLeftWillCommit      = "swipeLeftWillCommit"
	FieldSwipeRightWillCommit     = "swipeRightWillCommit"
	FieldSwipeLeftFollowsThrough  = "swipeLeftFollowsThrough"
	FieldSwipeRightFollowsThrough = "swipeRightFollowsThrough"
	FieldSwipeLeftRemovesItem     = "swipeLeftRemovesItem"
	FieldSwipeRightRemovesItem    = "swipeRightRemovesItem"
)

// Events raised on the host.
const (
	EventSelectedIndexChanged = "selected-index-changed"
	EventOpenedChanged        = "opened-changed"
	EventSwipeCommitChanged   = "swipe-commit-changed"
)
