package engine

const startText = "Hi! I'm your AI companion \U0001F60A\n\n" +
	"Tell me about your day, ask a question or ask for help.\n\n" +
	"Commands:\n" +
	"• /persona &lt;description&gt; — set the companion's style and role\n" +
	"• /reset — reset the persona and the dialog history\n" +
	"• /setmodel &lt;model&gt; — switch the OpenRouter model\n" +
	"• /help — more about the settings"

const helpText = "How to use:\n" +
	"— Just write messages: I reply and keep a short context of the dialog.\n" +
	"— /persona &lt;text&gt; sets the system prompt (character/role), e.g.:\n" +
	"   /persona A calm productivity mentor, short and to the point\n" +
	"— /reset drops the persona back to the default one.\n" +
	"— /setmodel &lt;model&gt; switches the model (e.g. meta-llama/llama-3.1-8b-instruct).\n" +
	"Note: memory lives in RAM and is wiped on restart."
