package ui

// Callback keys emitted by the keyboards and routed through the registry.
const (
	KeySendCode        = "send_code"
	KeyCheckSub        = "check_subscription"
	KeyCancel          = "cancel"
	KeyBackToMain      = "back_to_main"
	KeyBackToAdmin     = "back_to_admin"
	KeyAboutBot        = "about_bot"
	KeyAboutCreator    = "about_creator"
	KeyUploadFile      = "upload_file"
	KeyMyFiles         = "my_files"
	KeyViewFile        = "view_file"
	KeyDownloadFile    = "download_file"
	KeyDeleteFile      = "delete_file"
	KeyAddChannel      = "add_channel"
	KeyRemoveChannel   = "remove_channel"
	KeyRemoveChannelID = "rm_channel"
	KeyListChannels    = "list_channels"
	KeyAddWhitelist    = "add_whitelist"
	KeyRemoveWhitelist = "remove_whitelist"
	KeyRemoveWLUser    = "rm_wl"
	KeyStatistics      = "statistics"
)
