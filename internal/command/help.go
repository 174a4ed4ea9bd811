package command

const helpMessage = `*How to use the Asana Integration App*
1. ` + "`/asana my-tasks`" + ` -> Get the list of all the current tasks in your list :pencil:
2. ` + "`/asana projects`" + ` -> Provides all the projects in workspace with all their tasks :computer:
3. ` + "`/asana help`" + ` -> Provides list of essential subcommands to use the Asana integration :thinking:
4. ` + "`/asana connect`" + ` -> Connect your chat account with Asana by authorizing it :link:
5. ` + "`/asana feed`" + ` -> Digest of tasks created in the last 24 hours across your workspace :newspaper:
6. ` + "`/asana summary`" + ` -> Provides a summary of your remaining tasks :blog:
7. ` + "`/asana subscribe <resource-gid>`" + ` -> Creates a webhook for the provided resource so that you get notified of all events :bell:`
