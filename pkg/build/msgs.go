package build

// Progress messages, printed in build order
const (
	MsgCopyingMainFiles = "Copying main resource pack files..."
	MsgCopyingBundle    = "Copying %s..."
	MsgCopyingAssets    = "Copying assets..."
	MsgMirroring        = "Found %s. Copying files to resource pack folder..."
	MsgZipping          = "Zipping files..."
)
