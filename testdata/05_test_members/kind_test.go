package kinds

// C only exists in test builds.
const C Kind = 1
